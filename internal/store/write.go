package store

import (
	"context"
	"fmt"
)

// WriteSession inserts the journal header for a session.
// Writing the same session ID twice is a no-op.
func (s *Store) WriteSession(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, append_mode, seed_hash, seed_rows)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.AppendMode,
		sess.SeedHash,
		sess.SeedRows,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteEntry appends one event to a session's journal.
// The session must exist, and (session_id, seq) must be new.
func (s *Store) WriteEntry(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(session_id, seq, kind, row_index, column_name, raw_value, outcome, error_code, message, table_hash, table_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.SessionID,
		e.Seq,
		e.Kind,
		e.Row,
		e.Column,
		e.Raw,
		e.Outcome,
		e.ErrorCode,
		e.Message,
		e.TableHash,
		e.TableRows,
	)
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}
