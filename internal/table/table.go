// Package table holds the job table, the only mutable state of a session.
//
// The table is an explicit state object: it is created by its owner and
// passed to whatever needs it, never reached through a package variable.
// All methods are safe for concurrent use, and every mutation (single-cell
// edit or wholesale replacement) is applied atomically.
//
// The table stores what it is given and does not validate. Edits reach it
// through the validate package, so in the default append mode every Size is
// at least 1. The collapse append mode is the one exception: it rebuilds rows
// from the derived (description, WSJF) view, leaving them with Size 0 and
// undefined scores until the user edits them.
package table

import (
	"errors"
	"fmt"
	"sync"

	"github.com/roach88/wsjf/internal/job"
)

// ErrRowOutOfRange is returned when an edit addresses a row that does not exist.
var ErrRowOutOfRange = errors.New("row index out of range")

// Table is the ordered sequence of job records.
type Table struct {
	mu   sync.RWMutex
	jobs []job.Job
}

// New creates a table holding a copy of jobs.
func New(jobs []job.Job) *Table {
	return &Table{jobs: job.Clone(jobs)}
}

// Read returns a snapshot of the current rows.
// The snapshot is a copy; modifying it does not affect the table.
func (t *Table) Read() []job.Job {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return job.Clone(t.jobs)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.jobs)
}

// ApplyValidatedEdit writes one cell into row.
//
// Numeric cells must come from validate.Cell; the table does not re-check
// them. Description cells are written unconditionally.
func (t *Table) ApplyValidatedEdit(row int, cell job.Cell) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row < 0 || row >= len(t.jobs) {
		return fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, row, len(t.jobs))
	}
	t.jobs[row] = t.jobs[row].With(cell)
	return nil
}

// Replace swaps the whole table for a copy of jobs.
func (t *Table) Replace(jobs []job.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs = job.Clone(jobs)
}

// Update applies fn to the current rows and stores its result, holding the
// write lock for the whole read-modify-write. fn receives a copy.
func (t *Table) Update(fn func(current []job.Job) []job.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs = job.Clone(fn(job.Clone(t.jobs)))
}
