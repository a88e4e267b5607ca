package session

import "sync/atomic"

// Clock is the logical clock that orders the events of a session.
//
// Every handled event, accepted or rejected, is stamped with the next value.
// Ordering never depends on wall time, so a replayed script yields the same
// seq numbers.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next() returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
