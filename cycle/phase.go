package cycle

import (
	"fmt"
	"time"

	"github.com/sarchlab/pentagon/lights"
)

// Phase is one step of a direction's turn.
type Phase int

// The phases of a turn, in the order the engine walks them.
const (
	PhaseAllRed Phase = iota
	PhaseGreen
	PhaseYellow
	PhaseCleanup
)

var phaseNames = map[Phase]string{
	PhaseAllRed:  "ALL_RED",
	PhaseGreen:   "GREEN",
	PhaseYellow:  "YELLOW",
	PhaseCleanup: "CLEANUP",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Phase) next() Phase {
	if p == PhaseCleanup {
		return PhaseAllRed
	}

	return p + 1
}

// Position is where the engine stands in the cycle. It is what makes exact
// resumption after a pause possible.
type Position struct {
	// Index is the position in the service order of the direction being
	// served.
	Index int `json:"index"`

	// Phase is the phase of that direction that has not yet completed.
	Phase Phase `json:"phase"`

	// Current and Next are the directions of the turn in progress. They are
	// fixed when the turn starts and kept across a pause, so an order changed
	// mid-turn only affects later turns.
	Current lights.Direction `json:"current"`
	Next    lights.Direction `json:"next"`

	Paused   bool      `json:"paused"`
	PausedAt time.Time `json:"paused_at"`

	// Remaining is what was left of the interrupted wait. It is reported
	// for diagnostics only; a resumed phase always waits its full duration.
	Remaining time.Duration `json:"remaining"`

	// Passes counts completed traversals of all five directions.
	Passes uint64 `json:"passes"`
}

// A PhaseEvent is raised each time the engine enters a phase.
type PhaseEvent struct {
	Phase   Phase
	Pass    uint64
	Index   int
	Current lights.Direction
	Next    lights.Direction

	// Wait is how long the engine is going to hold the phase.
	Wait time.Duration
}
