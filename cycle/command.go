package cycle

import (
	"fmt"

	"github.com/sarchlab/pentagon/eventlog"
	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/lights"
)

// Administrative log lines.
const (
	PausedLine          = "[System PAUSED]"
	StatusRequestedLine = "STATUS REQUESTED"
)

// SetOrder replaces the service order. values must be a permutation of
// 0..4; otherwise the order is left untouched and an error wrapping
// lights.ErrInvalidOrder is returned.
func (e *Engine) SetOrder(values []int) error {
	order, err := lights.NewOrder(values)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.order = order
	line := "ORDER SET: " + order.String()
	seq := e.log.Append(line)
	e.mu.Unlock()

	e.announce(line, seq)

	return nil
}

// SetDelays replaces the phase durations from 15 millisecond values, a
// green/yellow/reserved triple per direction. Values under 100 ms are raised
// to 100 ms. A list of any other length is rejected with an error wrapping
// lights.ErrInvalidDelays and the durations stay as they were.
func (e *Engine) SetDelays(values []int) error {
	timings, err := lights.NewTimings(values)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.timings = timings
	line := "DELAYS SET: " + timings.String()
	seq := e.log.Append(line)
	e.mu.Unlock()

	e.announce(line, seq)

	return nil
}

// Pause freezes the sequencer. Only the first of consecutive calls has an
// effect.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.pos.Paused {
		e.mu.Unlock()
		return
	}

	e.pos.Paused = true
	e.pos.PausedAt = e.now()
	seq := e.log.Append(PausedLine)
	e.mu.Unlock()

	e.announce(PausedLine, seq)
}

// Resume lets a paused sequencer continue with the phase it was in. Calling
// it while running does nothing.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.pos.Paused {
		e.mu.Unlock()
		return
	}

	pausedFor := e.now().Sub(e.pos.PausedAt)
	e.pos.Paused = false
	line := fmt.Sprintf(
		"[System RESUMED] Paused for %.1f seconds", pausedFor.Seconds())
	seq := e.log.Append(line)
	e.mu.Unlock()

	e.announce(line, seq)
}

// RequestStatus records that a status probe was received.
func (e *Engine) RequestStatus() {
	e.Note(StatusRequestedLine)
}

// Note appends an administrative line to the event log.
func (e *Engine) Note(line string) {
	e.mu.Lock()
	seq := e.log.Append(line)
	e.mu.Unlock()

	e.announce(line, seq)
}

// ObserveHardware records the lamps reported by a physical controller. The
// engine's own lamps are not changed.
func (e *Engine) ObserveHardware(state lights.State) {
	e.mu.Lock()
	snap := lights.Snapshot{
		Seq:    e.seq.Next(),
		At:     e.now(),
		Lights: state,
	}
	e.hardware = &snap
	e.log.Append(state.HardwareLine())
	e.mu.Unlock()

	e.InvokeHook(hooking.HookCtx{Domain: e, Pos: HookPosHardware, Item: snap})
}

func (e *Engine) announce(line string, seq int) {
	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosAdmin,
		Item:   line,
		Detail: seq,
	})
}

// Status is a consistent copy of the engine's observable state.
type Status struct {
	Lights   lights.State
	Latest   string
	History  []lights.Snapshot
	Position Position
	Order    lights.Order
	Timings  lights.Timings
	Hardware *lights.Snapshot
}

// Status returns a copy of the current state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Status{
		Lights:   e.lamps,
		Latest:   e.latest,
		History:  append([]lights.Snapshot(nil), e.history...),
		Position: e.pos,
		Order:    e.order,
		Timings:  e.timings,
	}

	if e.hardware != nil {
		hw := *e.hardware
		s.Hardware = &hw
	}

	return s
}

// Position returns where the engine stands in the cycle.
func (e *Engine) Position() Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos
}

// RecentLog returns the administrative lines among the last n log entries.
// Snapshot lines are hidden but still count toward the n.
func (e *Engine) RecentLog(n int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.log.Recent(n, eventlog.IsSnapshot)
}

// RecentSnapshots returns the engine snapshot lines among the last n log
// entries.
func (e *Engine) RecentSnapshots(n int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.log.Recent(n, func(line string) bool {
		return !eventlog.IsEngineSnapshot(line)
	})
}
