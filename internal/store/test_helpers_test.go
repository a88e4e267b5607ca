package store

import (
	"context"
	"testing"
)

// createTestStore creates a new in-memory store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a session header and returns its ID.
func createTestSession(t *testing.T, s *Store, id string) string {
	t.Helper()
	err := s.WriteSession(context.Background(), Session{
		ID:         id,
		AppendMode: "preserve",
		SeedHash:   "seed-hash",
		SeedRows:   3,
	})
	if err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return id
}

// createTestEntry creates an entry with minimal required fields.
func createTestEntry(sessionID string, seq int64, kind, outcome string) Entry {
	return Entry{
		SessionID: sessionID,
		Seq:       seq,
		Kind:      kind,
		Row:       -1,
		Outcome:   outcome,
		TableHash: "hash",
		TableRows: 3,
	}
}
