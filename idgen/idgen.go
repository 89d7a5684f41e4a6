// Package idgen numbers snapshots and names recording sessions.
package idgen

import (
	"sync/atomic"

	"github.com/rs/xid"
)

// Sequence hands out strictly increasing numbers, starting at 1. It is safe
// for concurrent use.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence creates a Sequence whose first number is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next number.
func (s *Sequence) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last number handed out, or 0.
func (s *Sequence) Current() uint64 {
	return s.next.Load()
}

// SessionID returns a globally unique, sortable identifier for a run of the
// sequencer.
func SessionID() string {
	return xid.New().String()
}
