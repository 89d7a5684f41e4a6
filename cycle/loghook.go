package cycle

import (
	"log"

	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/lights"
)

// LogHook prints administrative lines, and optionally snapshots and phase
// changes, to a logger.
type LogHook struct {
	*log.Logger

	verbose bool
}

// NewLogHook returns a LogHook writing into logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Verbose makes the hook also print snapshots and phase changes.
func (h *LogHook) Verbose() *LogHook {
	h.verbose = true
	return h
}

// Func writes the hook item into the logger.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosAdmin:
		h.Printf("%s", ctx.Item)
	case HookPosHardware:
		if snap, ok := ctx.Item.(lights.Snapshot); ok && h.verbose {
			h.Printf("#%d hw %s", snap.Seq, snap.Lights.Bits())
		}
	case HookPosSnapshot:
		if snap, ok := ctx.Item.(lights.Snapshot); ok && h.verbose {
			h.Printf("#%d %s", snap.Seq, snap.Line())
		}
	case HookPosPhase:
		if evt, ok := ctx.Item.(PhaseEvent); ok && h.verbose {
			h.Printf("%s %s (next %s) for %s",
				evt.Phase, evt.Current, evt.Next, evt.Wait)
		}
	}
}
