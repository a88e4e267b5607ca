// Package store provides the SQLite-backed session journal.
//
// Every event a session handles (cell edit, row append, reset) is appended
// to the journal, accepted or rejected, together with the table hash after
// the event. The journal is an audit trail for one session: sessions open it
// on ":memory:" and it disappears when the session is closed.
//
// # Ordering
//
//   - Entries are ordered by seq, a per-session logical clock, never by
//     wall time.
//   - All reads use ORDER BY seq ASC, so repeated reads of the same session
//     return identical results.
//   - UNIQUE(session_id, seq) rejects a second entry for the same tick.
//
// # Database Configuration
//
//   - WAL mode (reported as "memory" for in-memory databases)
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
