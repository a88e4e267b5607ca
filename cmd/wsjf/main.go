// Command wsjf ranks jobs by Weighted Shortest Job First.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/wsjf/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
