package cycle

import (
	"time"

	"github.com/sarchlab/pentagon/eventlog"
	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/idgen"
	"github.com/sarchlab/pentagon/lights"
	"github.com/sarchlab/pentagon/timing"
)

// Builder can build engines.
type Builder struct {
	order        lights.Order
	timings      lights.Timings
	allRed       time.Duration
	tick         time.Duration
	idleInterval time.Duration
	historyLen   int
	now          func() time.Time
}

// MakeBuilder creates a builder with the default order, five seconds of
// green and two of yellow for every direction.
func MakeBuilder() Builder {
	return Builder{
		order:        lights.DefaultOrder(),
		timings:      lights.DefaultTimings(),
		allRed:       lights.AllRedDuration,
		tick:         timing.DefaultTick,
		idleInterval: timing.DefaultIdleInterval,
		historyLen:   20,
		now:          time.Now,
	}
}

// WithOrder sets the initial service order.
func (b Builder) WithOrder(o lights.Order) Builder {
	b.order = o
	return b
}

// WithTimings sets the initial phase durations.
func (b Builder) WithTimings(t lights.Timings) Builder {
	b.timings = t
	return b
}

// WithAllRedDuration sets how long every approach stays red between turns.
func (b Builder) WithAllRedDuration(d time.Duration) Builder {
	b.allRed = d
	return b
}

// WithTick sets how often running waits check for a pause.
func (b Builder) WithTick(d time.Duration) Builder {
	b.tick = d
	return b
}

// WithIdleInterval sets how often a paused engine checks for a resume.
func (b Builder) WithIdleInterval(d time.Duration) Builder {
	b.idleInterval = d
	return b
}

// WithHistoryLength sets how many snapshots Status reports.
func (b Builder) WithHistoryLength(n int) Builder {
	b.historyLen = n
	return b
}

// WithNowFunc sets the wall clock used to stamp snapshots and measure
// pauses.
func (b Builder) WithNowFunc(now func() time.Time) Builder {
	b.now = now
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.allRed <= 0 {
		panic("cycle: all-red duration must be positive")
	}

	if b.historyLen <= 0 {
		panic("cycle: history length must be positive")
	}

	if b.now == nil {
		panic("cycle: now func must be set")
	}
}

// Build creates an engine with every approach red, positioned at the start
// of the first direction in the service order.
func (b Builder) Build() *Engine {
	b.parametersMustBeValid()

	e := &Engine{
		HookableBase: hooking.NewHookableBase(),
		order:        b.order,
		timings:      b.timings,
		lamps:        lights.AllRedState(),
		pos:          Position{Index: 0, Phase: PhaseAllRed},
		log:          eventlog.New(),
		historyLen:   b.historyLen,
		allRed:       b.allRed,
		seq:          idgen.NewSequence(),
		now:          b.now,
	}

	e.clock = timing.NewPhaseClock(e).
		WithTick(b.tick).
		WithIdleInterval(b.idleInterval)

	return e
}
