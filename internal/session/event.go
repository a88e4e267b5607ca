package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/table"
	"github.com/roach88/wsjf/internal/validate"
)

// EventKind distinguishes the user interactions a session handles.
type EventKind string

const (
	// EventEdit is a single cell edit: (row, column, raw value).
	EventEdit EventKind = "edit"
	// EventAppend appends the blank template row.
	EventAppend EventKind = "append"
	// EventReset restores the seed table.
	EventReset EventKind = "reset"
)

// Event is one discrete user interaction.
// Row, Column and Raw are only meaningful for EventEdit.
type Event struct {
	Kind   EventKind
	Row    int
	Column string
	Raw    string
}

// EditEvent builds an EventEdit.
func EditEvent(row int, column, raw string) Event {
	return Event{Kind: EventEdit, Row: row, Column: column, Raw: raw}
}

// Outcome reports how an event was handled.
type Outcome struct {
	Seq     int64
	Event   Event
	Applied bool

	// Err is the reason for rejection. Validation errors carry a message
	// meant for the user verbatim.
	Err error

	// TableHash identifies the table after the event.
	TableHash string
}

// AppendMode selects how the add-row action rebuilds the table.
type AppendMode string

const (
	// AppendPreserve appends the blank row onto the raw records. Existing
	// rows keep every field.
	AppendPreserve AppendMode = "preserve"

	// AppendCollapse rebuilds the table from the derived (description, WSJF)
	// view before appending. Existing rows keep only their description and
	// every numeric field drops to 0.
	AppendCollapse AppendMode = "collapse"
)

// AppendModes lists the accepted modes.
var AppendModes = []AppendMode{AppendPreserve, AppendCollapse}

// ParseAppendMode resolves a mode name. The empty string selects AppendPreserve.
func ParseAppendMode(s string) (AppendMode, error) {
	switch AppendMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AppendPreserve:
		return AppendPreserve, nil
	case AppendCollapse:
		return AppendCollapse, nil
	}
	return "", fmt.Errorf("invalid append mode %q: must be one of %v", s, AppendModes)
}

// Rejection codes recorded in the journal besides the validation codes.
const (
	CodeUnknownColumn = "UNKNOWN_COLUMN"
	CodeRowOutOfRange = "ROW_OUT_OF_RANGE"
	CodeUnknownEvent  = "UNKNOWN_EVENT"
)

// ErrUnknownEvent is returned for an Event with an unrecognized Kind.
var ErrUnknownEvent = errors.New("unknown event kind")

// ErrorCode maps a rejection to its journal code, or "" for nil and
// unrecognized errors.
func ErrorCode(err error) string {
	if code := validate.CodeOf(err); code != "" {
		return string(code)
	}
	switch {
	case errors.Is(err, table.ErrRowOutOfRange):
		return CodeRowOutOfRange
	case errors.Is(err, ErrUnknownEvent):
		return CodeUnknownEvent
	case errors.Is(err, job.ErrUnknownColumn):
		return CodeUnknownColumn
	}
	return ""
}
