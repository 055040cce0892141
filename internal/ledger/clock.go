package ledger

import "sync/atomic"

// Clock is a monotonic logical clock for event ordering.
//
// Every trust event is stamped with a strictly increasing seq number
// from this clock. Wall-clock timestamps on events are informational
// only; seq is what makes a node's history replay in a fixed order.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// so concurrent appends for different nodes never contend on a lock.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used on startup to resume from the store's last known position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
