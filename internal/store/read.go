package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadSession retrieves a session header by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, append_mode, seed_hash, seed_rows
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.AppendMode, &sess.SeedHash, &sess.SeedRows)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// ReadEntries returns every journal entry of a session ordered by seq.
// Returns an empty slice (not nil) if the session has no entries.
func (s *Store) ReadEntries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, kind, row_index, column_name, raw_value, outcome, error_code, message, table_hash, table_rows
		FROM events
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// CountByOutcome returns how many entries of a session have the given outcome.
func (s *Store) CountByOutcome(ctx context.Context, sessionID, outcome string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM events WHERE session_id = ? AND outcome = ?
	`, sessionID, outcome).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	err := rows.Scan(
		&e.SessionID,
		&e.Seq,
		&e.Kind,
		&e.Row,
		&e.Column,
		&e.Raw,
		&e.Outcome,
		&e.ErrorCode,
		&e.Message,
		&e.TableHash,
		&e.TableRows,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	return e, nil
}
