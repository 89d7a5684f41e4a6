// Package cycle implements the pentagon sequencer: a cyclic phase state
// machine that grants right-of-way to five approaches in a configurable
// order, and the command surface used to reconfigure, pause and resume it.
package cycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarchlab/pentagon/eventlog"
	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/idgen"
	"github.com/sarchlab/pentagon/lights"
	"github.com/sarchlab/pentagon/timing"
)

// ErrAlreadyRunning is returned when Run is called on an engine whose
// scheduling loop is already running.
var ErrAlreadyRunning = errors.New("cycle: engine is already running")

// Engine walks the service order, drives the lamps through their phases and
// records snapshots. All of its state is guarded by a single mutex shared by
// the scheduling loop and the command surface. Hooks are invoked outside
// the mutex.
type Engine struct {
	*hooking.HookableBase

	mu       sync.Mutex
	order    lights.Order
	timings  lights.Timings
	lamps    lights.State
	pos      Position
	log      *eventlog.Log
	latest   string
	history  []lights.Snapshot
	hardware *lights.Snapshot
	inTurn   bool

	historyLen int
	allRed     time.Duration
	clock      *timing.PhaseClock
	seq        *idgen.Sequence
	now        func() time.Time
	running    atomic.Bool
}

// Run executes the scheduling loop until ctx ends. While the engine is not
// paused it runs passes over the service order, resuming from the recorded
// position; while paused it idles. Cancelling ctx is the only way to stop
// the loop and is meant for teardown.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	for ctx.Err() == nil {
		if e.IsPaused() {
			e.clock.Idle(ctx)
			continue
		}

		e.runPass(ctx)
	}

	return nil
}

// Running reports whether the scheduling loop is active.
func (e *Engine) Running() bool {
	return e.running.Load()
}

func (e *Engine) runPass(ctx context.Context) {
	for {
		e.mu.Lock()
		i := e.pos.Index
		if !e.inTurn {
			e.pos.Current = e.order.At(i)
			e.pos.Next = e.order.Next(i)
			e.inTurn = true
		}
		current, next := e.pos.Current, e.pos.Next
		e.mu.Unlock()

		if !e.serve(ctx, i, current, next) {
			return
		}

		e.mu.Lock()
		e.inTurn = false
		e.pos.Index++
		finished := e.pos.Index >= lights.NumDirections
		if finished {
			e.pos.Index = 0
			e.pos.Passes++
		}
		e.mu.Unlock()

		if finished {
			return
		}
	}
}

// serve runs the remaining phases of one direction's turn. It returns false
// if the turn was interrupted, leaving the unfinished phase recorded so that
// the next attempt starts it over.
func (e *Engine) serve(
	ctx context.Context,
	index int,
	current, next lights.Direction,
) bool {
	for {
		e.mu.Lock()
		if e.pos.Paused {
			e.mu.Unlock()
			return false
		}

		phase := e.pos.Phase
		pass := e.pos.Passes
		wait := e.enterLocked(phase, current, next)
		snap := e.snapshotLocked()
		e.mu.Unlock()

		e.InvokeHook(hooking.HookCtx{
			Domain: e,
			Pos:    HookPosPhase,
			Item: PhaseEvent{
				Phase:   phase,
				Pass:    pass,
				Index:   index,
				Current: current,
				Next:    next,
				Wait:    wait,
			},
		})
		e.InvokeHook(hooking.HookCtx{Domain: e, Pos: HookPosSnapshot, Item: snap})

		if phase == PhaseCleanup {
			e.setPhase(PhaseAllRed)
			return true
		}

		if !e.hold(ctx, wait) {
			return false
		}

		e.setPhase(phase.next())
	}
}

// enterLocked applies the entry action of a phase and returns how long the
// phase lasts.
func (e *Engine) enterLocked(
	phase Phase,
	current, next lights.Direction,
) time.Duration {
	switch phase {
	case PhaseAllRed:
		e.lamps = lights.AllRedState()
		return e.allRed
	case PhaseGreen:
		e.lamps[current].Red = false
		e.lamps[current].Green = true
		return e.timings[current].Green
	case PhaseYellow:
		e.lamps[current].Green = false
		e.lamps[current].Yellow = true
		e.lamps[next].Red = false
		e.lamps[next].Yellow = true
		return e.timings[current].Yellow
	case PhaseCleanup:
		e.lamps[current].Yellow = false
		e.lamps[next].Yellow = false
		return 0
	default:
		// The phase set is closed and only next() produces phases, so this
		// is unreachable.
		panic("cycle: unknown phase " + phase.String())
	}
}

func (e *Engine) hold(ctx context.Context, d time.Duration) bool {
	start := e.now()

	switch e.clock.Wait(ctx, d) {
	case timing.Completed:
		return true
	case timing.Interrupted:
		remaining := d - e.now().Sub(start)
		if remaining < 0 {
			remaining = 0
		}

		e.mu.Lock()
		e.pos.Remaining = remaining
		e.mu.Unlock()

		return false
	default:
		return false
	}
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.pos.Phase = p
	e.pos.Remaining = 0
	e.mu.Unlock()
}

func (e *Engine) snapshotLocked() lights.Snapshot {
	snap := lights.Snapshot{
		Seq:    e.seq.Next(),
		At:     e.now(),
		Lights: e.lamps,
	}

	e.latest = snap.Line()
	e.log.Append(e.latest)

	e.history = append(e.history, snap)
	if len(e.history) > e.historyLen {
		e.history = e.history[len(e.history)-e.historyLen:]
	}

	return snap
}

// IsPaused reports whether the engine is paused. It is the pause sampler of
// the engine's phase clock.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Paused
}
