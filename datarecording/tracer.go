package datarecording

import (
	"time"

	"github.com/sarchlab/pentagon/cycle"
	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/lights"
)

// Table names used by the Tracer.
const (
	SnapshotTable = "snapshots"
	PhaseTable    = "phases"
	EventTable    = "events"
)

// SnapshotEntry is one row of the snapshot table.
type SnapshotEntry struct {
	Seq    uint64
	Time   float64
	Source string
	Bits   string
	Line   string
}

// PhaseEntry is one row of the phase table.
type PhaseEntry struct {
	Time      float64
	Pass      uint64
	Position  int
	Phase     string
	Current   string
	Following string
	WaitMs    int64
}

// EventEntry is one row of the event table. Seq is the line's position in
// the engine's event log.
type EventEntry struct {
	Seq  int
	Time float64
	Line string
}

// Tracer is a hook that records engine snapshots, phase changes, hardware
// snapshots and administrative lines into a DataRecorder.
type Tracer struct {
	recorder DataRecorder
	start    time.Time
	now      func() time.Time
}

// NewTracer creates the tracer tables in recorder and returns the hook.
func NewTracer(recorder DataRecorder) *Tracer {
	t := &Tracer{
		recorder: recorder,
		now:      time.Now,
	}
	t.start = t.now()

	recorder.CreateTable(SnapshotTable, SnapshotEntry{})
	recorder.CreateTable(PhaseTable, PhaseEntry{})
	recorder.CreateTable(EventTable, EventEntry{})

	return t
}

// Func records the hook item.
func (t *Tracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case cycle.HookPosSnapshot:
		t.recordSnapshot(ctx.Item, false)
	case cycle.HookPosHardware:
		t.recordSnapshot(ctx.Item, true)
	case cycle.HookPosPhase:
		evt, ok := ctx.Item.(cycle.PhaseEvent)
		if !ok {
			return
		}

		t.recorder.InsertData(PhaseTable, PhaseEntry{
			Time:      t.elapsed(t.now()),
			Pass:      evt.Pass,
			Position:  evt.Index,
			Phase:     evt.Phase.String(),
			Current:   evt.Current.String(),
			Following: evt.Next.String(),
			WaitMs:    evt.Wait.Milliseconds(),
		})
	case cycle.HookPosAdmin:
		line, ok := ctx.Item.(string)
		if !ok {
			return
		}

		seq, _ := ctx.Detail.(int)
		t.recorder.InsertData(EventTable, EventEntry{
			Seq:  seq,
			Time: t.elapsed(t.now()),
			Line: line,
		})
	}
}

func (t *Tracer) recordSnapshot(item any, hardware bool) {
	snap, ok := item.(lights.Snapshot)
	if !ok {
		return
	}

	source, line := "engine", snap.Line()
	if hardware {
		source, line = "hardware", snap.Lights.HardwareLine()
	}

	at := snap.At
	if at.IsZero() {
		at = t.now()
	}

	t.recorder.InsertData(SnapshotTable, SnapshotEntry{
		Seq:    snap.Seq,
		Time:   t.elapsed(at),
		Source: source,
		Bits:   snap.Lights.Bits(),
		Line:   line,
	})
}

func (t *Tracer) elapsed(at time.Time) float64 {
	return at.Sub(t.start).Seconds()
}
