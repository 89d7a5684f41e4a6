package cycle

import (
	"context"
	"sync"
	"time"

	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/lights"

	. "github.com/onsi/gomega"
)

type observedSnapshot struct {
	phase Phase
	at    time.Time
	snap  lights.Snapshot
}

type observedPhase struct {
	at  time.Time
	evt PhaseEvent
}

// collector records what the engine publishes. Phase and snapshot hooks are
// raised back to back by the scheduling loop, so each snapshot is tagged with
// the phase announced just before it.
type collector struct {
	mu        sync.Mutex
	lastPhase Phase
	phases    []observedPhase
	snapshots []observedSnapshot
	admin     []string
	adminSeqs []int
}

func (c *collector) Func(ctx hooking.HookCtx) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	switch ctx.Pos {
	case HookPosPhase:
		evt := ctx.Item.(PhaseEvent)
		c.lastPhase = evt.Phase
		c.phases = append(c.phases, observedPhase{at: now, evt: evt})
	case HookPosSnapshot:
		c.snapshots = append(c.snapshots, observedSnapshot{
			phase: c.lastPhase,
			at:    now,
			snap:  ctx.Item.(lights.Snapshot),
		})
	case HookPosAdmin:
		c.admin = append(c.admin, ctx.Item.(string))
		c.adminSeqs = append(c.adminSeqs, ctx.Detail.(int))
	}
}

func (c *collector) phaseEvents() []observedPhase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]observedPhase(nil), c.phases...)
}

func (c *collector) snapshotList() []observedSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]observedSnapshot(nil), c.snapshots...)
}

func (c *collector) snapshotCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.snapshots)
}

func (c *collector) adminLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.admin...)
}

func (c *collector) adminPositions() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]int(nil), c.adminSeqs...)
}

// greens returns the directions that turned green during the given pass.
func (c *collector) greens(pass uint64) []lights.Direction {
	var dirs []lights.Direction
	for _, p := range c.phaseEvents() {
		if p.evt.Phase == PhaseGreen && p.evt.Pass == pass {
			dirs = append(dirs, p.evt.Current)
		}
	}

	return dirs
}

// entered reports whether the engine has announced phase for dir.
func (c *collector) entered(phase Phase, dir lights.Direction) bool {
	for _, p := range c.phaseEvents() {
		if p.evt.Phase == phase && p.evt.Current == dir {
			return true
		}
	}

	return false
}

// expectSafeLamps checks that no snapshot shows two greens and that every
// yellow snapshot shows exactly two yellows and no green.
func expectSafeLamps(snaps []observedSnapshot) {
	green := func(f lights.Flags) bool { return f.Green }
	yellow := func(f lights.Flags) bool { return f.Yellow }

	for _, s := range snaps {
		l := s.snap.Lights
		Expect(l.Count(green)).To(BeNumerically("<=", 1), l.Line())

		if s.phase == PhaseYellow {
			Expect(l.Count(yellow)).To(Equal(2), l.Line())
			Expect(l.Count(green)).To(BeZero(), l.Line())
		}
	}
}

func uniformDelays(green, yellow int) []int {
	values := make([]int, 0, lights.NumDelays)
	for i := 0; i < lights.NumDirections; i++ {
		values = append(values, green, yellow, green)
	}

	return values
}

func fastTimings(green, yellow int) lights.Timings {
	t, err := lights.NewTimings(uniformDelays(green, yellow))
	Expect(err).NotTo(HaveOccurred())

	return t
}

type runningEngine struct {
	cancel context.CancelFunc
	done   chan error
}

func start(e *Engine) *runningEngine {
	ctx, cancel := context.WithCancel(context.Background())
	r := &runningEngine{cancel: cancel, done: make(chan error, 1)}

	go func() {
		r.done <- e.Run(ctx)
	}()

	Eventually(e.Running).Should(BeTrue())

	return r
}

func (r *runningEngine) stop() {
	r.cancel()
	Eventually(r.done, time.Second).Should(Receive(BeNil()))
}
