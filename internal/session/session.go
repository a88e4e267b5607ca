// Package session runs the reactive core of the calculator for one user.
//
// A Session owns the job table and handles one event at a time: a cell edit,
// an add-row action or a reset. Edits pass through the validator before they
// may touch the table. Derived values (scores, top job) are computed from the
// table on every read and are never cached, so they always reflect the last
// committed event.
//
// Every handled event is stamped by the session clock and, when a journal is
// attached, recorded in it together with the resulting table hash.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/priority"
	"github.com/roach88/wsjf/internal/store"
	"github.com/roach88/wsjf/internal/table"
	"github.com/roach88/wsjf/internal/validate"
)

// Session is the single writer of a job table.
//
// Handle serializes events: an event runs to completion, journal write
// included, before the next one starts.
type Session struct {
	mu sync.Mutex

	id      string
	seed    []job.Job
	table   *table.Table
	mode    AppendMode
	clock   *Clock
	idGen   IDGenerator
	journal *store.Store
	logger  *slog.Logger

	ownsJournal bool
}

// Option configures a Session.
type Option func(*Session)

// WithAppendMode sets the add-row behavior. Default: AppendPreserve.
func WithAppendMode(mode AppendMode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithJournal attaches an already open journal. The caller keeps ownership
// and must close it.
func WithJournal(st *store.Store) Option {
	return func(s *Session) {
		s.journal = st
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithIDGenerator sets the session ID source. Default: UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Session) {
		s.idGen = gen
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New starts a session on a copy of seed.
//
// Without WithJournal an in-memory journal is opened and closed by Close.
func New(ctx context.Context, seed []job.Job, opts ...Option) (*Session, error) {
	s := &Session{
		seed:   job.Clone(seed),
		table:  table.New(seed),
		mode:   AppendPreserve,
		clock:  NewClock(),
		idGen:  UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := ParseAppendMode(string(s.mode)); err != nil {
		return nil, err
	}

	if s.journal == nil {
		st, err := store.Open(store.MemoryPath)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		s.journal = st
		s.ownsJournal = true
	}

	s.id = s.idGen.Generate()
	seedHash, err := job.TableHash(s.seed)
	if err != nil {
		s.Close()
		return nil, err
	}
	err = s.journal.WriteSession(ctx, store.Session{
		ID:         s.id,
		AppendMode: string(s.mode),
		SeedHash:   seedHash,
		SeedRows:   len(s.seed),
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	s.logger.Info("session started",
		"session", s.id,
		"rows", len(s.seed),
		"append_mode", s.mode,
	)
	return s, nil
}

// Close releases the journal if the session opened it.
func (s *Session) Close() error {
	if s.ownsJournal && s.journal != nil {
		err := s.journal.Close()
		s.journal = nil
		return err
	}
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the add-row behavior in effect.
func (s *Session) Mode() AppendMode {
	return s.mode
}

// Rows returns a snapshot of the job table.
func (s *Session) Rows() []job.Job {
	return s.table.Read()
}

// Priorities computes the WSJF view of the current table.
// Rows whose score is undefined are logged at warn level.
func (s *Session) Priorities() []priority.Priority {
	ps := priority.Compute(s.table.Read())
	for _, err := range priority.Undefined(ps) {
		s.logger.Warn("undefined score", "session", s.id, "error", err)
	}
	return ps
}

// TopJob returns the description of the highest-priority job, or
// priority.ErrEmptyTable.
func (s *Session) TopJob() (string, error) {
	return priority.TopJob(s.table.Read())
}

// Edit handles an EventEdit and returns the rejection reason, if any.
func (s *Session) Edit(ctx context.Context, row int, column, raw string) error {
	return s.Handle(ctx, EditEvent(row, column, raw)).Err
}

// AppendRow handles an EventAppend.
func (s *Session) AppendRow(ctx context.Context) error {
	return s.Handle(ctx, Event{Kind: EventAppend}).Err
}

// Reset handles an EventReset.
func (s *Session) Reset(ctx context.Context) error {
	return s.Handle(ctx, Event{Kind: EventReset}).Err
}

// Handle processes one event to completion.
//
// Journal write failures are logged and do not undo the event; the table
// stays the source of truth.
func (s *Session) Handle(ctx context.Context, ev Event) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Outcome{Seq: s.clock.Next(), Event: ev}

	switch ev.Kind {
	case EventEdit:
		out.Err = s.applyEdit(ev)
	case EventAppend:
		s.appendRow()
	case EventReset:
		s.table.Replace(s.seed)
	default:
		out.Err = fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	out.Applied = out.Err == nil

	rows := s.table.Read()
	out.TableHash = job.MustTableHash(rows)

	s.logOutcome(out, len(rows))
	s.record(ctx, out, len(rows))
	return out
}

func (s *Session) applyEdit(ev Event) error {
	column, err := job.ParseColumn(ev.Column)
	if err != nil {
		return err
	}
	cell, err := validate.Cell(column, ev.Raw)
	if err != nil {
		var ve *validate.ValidationError
		if errors.As(err, &ve) {
			ve.Row = ev.Row
		}
		return err
	}
	return s.table.ApplyValidatedEdit(ev.Row, cell)
}

func (s *Session) appendRow() {
	s.table.Update(func(current []job.Job) []job.Job {
		if s.mode == AppendCollapse {
			current = collapse(current)
		}
		return append(current, job.Blank())
	})
}

// collapse rebuilds rows from the derived (description, WSJF) view. Only the
// description survives; WSJF has no place in the job schema and is dropped.
// The rebuilt rows have Size 0, the only way an unvalidated Size enters the
// table.
func collapse(rows []job.Job) []job.Job {
	ps := priority.Compute(rows)
	out := make([]job.Job, len(ps))
	for i, p := range ps {
		out[i] = job.Job{Description: p.Description}
	}
	return out
}

func (s *Session) logOutcome(out Outcome, rows int) {
	attrs := []any{
		"session", s.id,
		"seq", out.Seq,
		"kind", out.Event.Kind,
	}
	if out.Event.Kind == EventEdit {
		attrs = append(attrs, "row", out.Event.Row, "column", out.Event.Column)
	}

	if out.Err != nil {
		attrs = append(attrs, "code", ErrorCode(out.Err), "error", out.Err.Error())
		s.logger.Info("event rejected", attrs...)
		return
	}

	attrs = append(attrs, "rows", rows)
	switch out.Event.Kind {
	case EventEdit:
		s.logger.Info("edit applied", attrs...)
	case EventAppend:
		s.logger.Info("row appended", append(attrs, "append_mode", s.mode)...)
	case EventReset:
		s.logger.Info("table reset", attrs...)
	}
}

func (s *Session) record(ctx context.Context, out Outcome, rows int) {
	if s.journal == nil {
		return
	}

	e := store.Entry{
		SessionID: s.id,
		Seq:       out.Seq,
		Kind:      string(out.Event.Kind),
		Row:       -1,
		Outcome:   store.OutcomeApplied,
		TableHash: out.TableHash,
		TableRows: rows,
	}
	if out.Event.Kind == EventEdit {
		e.Row = out.Event.Row
		e.Column = out.Event.Column
		e.Raw = out.Event.Raw
	}
	if out.Err != nil {
		e.Outcome = store.OutcomeRejected
		e.ErrorCode = ErrorCode(out.Err)
		e.Message = out.Err.Error()
	}

	if err := s.journal.WriteEntry(ctx, e); err != nil {
		s.logger.Error("journal write failed", "session", s.id, "seq", out.Seq, "error", err)
	}
}

// Journal returns every recorded event of this session in seq order.
func (s *Session) Journal(ctx context.Context) ([]store.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal == nil {
		return []store.Entry{}, nil
	}
	return s.journal.ReadEntries(ctx, s.id)
}
