package store

// Session is the header row of a journal.
type Session struct {
	ID         string `json:"id"`
	AppendMode string `json:"append_mode"`
	SeedHash   string `json:"seed_hash"`
	SeedRows   int    `json:"seed_rows"`
}

// Outcome values recorded for an entry.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Entry is one journaled event.
//
// Row is -1 and Column/Raw are empty for events that do not address a cell.
// TableHash and TableRows describe the table after the event; for rejected
// events that is the unchanged table.
type Entry struct {
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
	Kind      string `json:"kind"`
	Row       int    `json:"row"`
	Column    string `json:"column,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Outcome   string `json:"outcome"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
	TableHash string `json:"table_hash"`
	TableRows int    `json:"table_rows"`
}
