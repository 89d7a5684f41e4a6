// Package timing provides the pausable phase clock used by the cycle engine
// to wait out phase durations.
package timing

import (
	"context"
	"time"
)

const (
	// DefaultTick is how often a running wait samples the pause flag.
	DefaultTick = 10 * time.Millisecond

	// DefaultIdleInterval is how long the scheduling loop idles between
	// checks while the sequencer is paused.
	DefaultIdleInterval = 100 * time.Millisecond
)

// Outcome tells how a wait ended.
type Outcome int

// The possible outcomes of a wait.
const (
	// Completed means the whole duration elapsed.
	Completed Outcome = iota

	// Interrupted means a pause was observed before the duration elapsed.
	Interrupted

	// Cancelled means the context ended, which only happens at teardown.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Interrupted:
		return "interrupted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// A PauseSampler reports whether the sequencer is paused. Each call is
// expected to be a short critical section.
type PauseSampler interface {
	IsPaused() bool
}

// PauseSamplerFunc adapts a function to the PauseSampler interface.
type PauseSamplerFunc func() bool

// IsPaused calls f.
func (f PauseSamplerFunc) IsPaused() bool {
	return f()
}

// PhaseClock waits out phase durations while staying responsive to pauses.
// It never blocks inside the sampler; only the sample itself is a critical
// section, so lock contention is bounded by the tick.
type PhaseClock struct {
	sampler      PauseSampler
	tick         time.Duration
	idleInterval time.Duration
}

// NewPhaseClock creates a PhaseClock with the default tick and idle interval.
func NewPhaseClock(sampler PauseSampler) *PhaseClock {
	return &PhaseClock{
		sampler:      sampler,
		tick:         DefaultTick,
		idleInterval: DefaultIdleInterval,
	}
}

// WithTick sets the sampling period.
func (c *PhaseClock) WithTick(tick time.Duration) *PhaseClock {
	if tick <= 0 {
		panic("timing: tick must be positive")
	}

	c.tick = tick

	return c
}

// WithIdleInterval sets the period used by Idle.
func (c *PhaseClock) WithIdleInterval(d time.Duration) *PhaseClock {
	if d <= 0 {
		panic("timing: idle interval must be positive")
	}

	c.idleInterval = d

	return c
}

// Tick returns the sampling period.
func (c *PhaseClock) Tick() time.Duration {
	return c.tick
}

// Wait blocks for d unless a pause is sampled first. A pause observed before
// the deadline returns Interrupted at once; the unspent part of d is dropped.
func (c *PhaseClock) Wait(ctx context.Context, d time.Duration) Outcome {
	if c.sampler.IsPaused() {
		return Interrupted
	}

	deadline := time.NewTimer(d)
	defer deadline.Stop()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Cancelled
		case <-deadline.C:
			return Completed
		case <-ticker.C:
			if c.sampler.IsPaused() {
				return Interrupted
			}
		}
	}
}

// Idle blocks for one idle interval. It returns false if ctx ended.
func (c *PhaseClock) Idle(ctx context.Context) bool {
	t := time.NewTimer(c.idleInterval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
