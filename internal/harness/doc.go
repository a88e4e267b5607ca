// Package harness runs scripted calculator sessions and checks the outcome.
//
// A scenario names a seed table, an append mode and a list of steps (cell
// edits, add-row, reset). Each step may declare the rejection code it
// expects. After the steps run, assertions check the final table, individual
// WSJF scores and the top job.
//
// Every run uses a fresh session with a fixed session ID and a discard
// logger, so a scenario always produces the same snapshot. Snapshots are
// canonical JSON and are compared against golden files with goldie.
package harness
