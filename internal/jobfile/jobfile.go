// Package jobfile loads seed job tables from disk.
//
// Two formats are supported, selected by file extension:
//
//   - YAML (.yaml, .yml, .json): a top-level "jobs" list decoded strictly,
//     so misspelled keys are reported instead of silently dropped.
//   - CUE (.cue): unified with an embedded schema before decoding. The schema
//     closes each job record and fixes field types; value rules (Size >= 1)
//     are left to the validate package so both formats report them the same
//     way.
//
// Load parses and validates. Parse only parses, which lets callers such as
// the validate command collect every rule violation themselves.
package jobfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/validate"
)

//go:embed schema.cue
var schemaCUE []byte

// Error codes reported by Parse and Load.
const (
	ErrCodeRead        = "READ_FAILED"
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
	ErrCodeParse       = "PARSE_FAILED"
	ErrCodeSchema      = "SCHEMA_VIOLATION"
	ErrCodeInvalid     = "INVALID_JOBS"
)

// LoadError is a failure to turn a file into a job table.
//
// Problems holds every rule violation when Code is ErrCodeInvalid.
type LoadError struct {
	Path     string
	Code     string
	Message  string
	Pos      token.Pos
	Problems []error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

// Unwrap exposes the rule violations to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	return e.Problems
}

// IsLoadError reports whether err is, or wraps, a LoadError with code.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == code
}

// file is the on-disk layout shared by both formats.
type file struct {
	Jobs []job.Job `json:"jobs" yaml:"jobs"`
}

// Load reads path and validates every job in it.
func Load(path string) ([]job.Job, error) {
	jobs, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if problems := validate.Table(jobs); len(problems) > 0 {
		return nil, &LoadError{
			Path:     path,
			Code:     ErrCodeInvalid,
			Message:  fmt.Sprintf("%d invalid value(s)", len(problems)),
			Problems: problems,
		}
	}
	return jobs, nil
}

// Parse reads path without applying the validation rules.
func Parse(path string) ([]job.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Code: ErrCodeRead, Message: err.Error()}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	}
	return nil, &LoadError{
		Path:    path,
		Code:    ErrCodeUnsupported,
		Message: fmt.Sprintf("unsupported extension %q (want .yaml, .yml, .json or .cue)", filepath.Ext(path)),
	}
}

// ParseYAML decodes a YAML job file. Unknown keys are rejected.
func ParseYAML(path string, data []byte) ([]job.Job, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, &LoadError{Path: path, Code: ErrCodeParse, Message: err.Error()}
	}
	return job.Clone(f.Jobs), nil
}

// ParseCUE evaluates a CUE job file against the embedded schema.
func ParseCUE(path string, data []byte) ([]job.Job, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cueError(path, ErrCodeSchema, err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, cueError(path, ErrCodeParse, err)
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(path, ErrCodeSchema, err)
	}

	var f file
	if err := v.Decode(&f); err != nil {
		return nil, cueError(path, ErrCodeSchema, err)
	}
	return job.Clone(f.Jobs), nil
}

// cueError keeps the first CUE error and its position.
func cueError(path, code string, err error) *LoadError {
	le := &LoadError{Path: path, Code: code, Message: err.Error()}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	le.Message = errs[0].Error()
	if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
