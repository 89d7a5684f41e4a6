package cycle

import (
	"context"
	"time"

	"github.com/sarchlab/pentagon/lights"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var (
		engine *Engine
		col    *collector
		run    *runningEngine
	)

	build := func(b Builder) {
		engine = b.WithIdleInterval(10 * time.Millisecond).Build()
		col = &collector{}
		engine.AcceptHook(col)
	}

	AfterEach(func() {
		if run != nil {
			run.stop()
			run = nil
		}
	})

	It("should start with every approach red", func() {
		build(MakeBuilder())

		status := engine.Status()
		Expect(status.Lights).To(Equal(lights.AllRedState()))
		Expect(status.Position.Index).To(Equal(0))
		Expect(status.Position.Phase).To(Equal(PhaseAllRed))
		Expect(status.Position.Paused).To(BeFalse())
		Expect(status.Order).To(Equal(lights.DefaultOrder()))
	})

	It("should refuse to run twice", func() {
		build(MakeBuilder().WithTimings(fastTimings(100, 100)))
		run = start(engine)

		Expect(engine.Run(context.Background())).To(MatchError(ErrAlreadyRunning))
	})

	It("should visit the directions of a new order in the next pass", func() {
		build(MakeBuilder().WithTimings(fastTimings(100, 100)))
		Expect(engine.SetOrder([]int{3, 1, 4, 0, 2})).To(Succeed())

		run = start(engine)

		Eventually(func() []lights.Direction { return col.greens(0) }, 3*time.Second).
			Should(HaveLen(lights.NumDirections))
		Expect(col.greens(0)).To(Equal([]lights.Direction{
			lights.SouthWest, lights.NorthEast, lights.NorthWest,
			lights.North, lights.SouthEast,
		}))
	})

	It("should apply an order changed mid-run from the following pass", func() {
		build(MakeBuilder().WithTimings(fastTimings(100, 100)))
		run = start(engine)

		Eventually(func() int { return len(col.greens(0)) }, time.Second).
			Should(BeNumerically(">=", 2))
		Expect(engine.SetOrder([]int{4, 3, 2, 1, 0})).To(Succeed())

		Eventually(func() []lights.Direction { return col.greens(1) }, 4*time.Second).
			Should(HaveLen(lights.NumDirections))
		Expect(col.greens(1)).To(Equal([]lights.Direction{
			lights.NorthWest, lights.SouthWest, lights.SouthEast,
			lights.NorthEast, lights.North,
		}))
	})

	It("should keep every approach red in all-red snapshots", func() {
		build(MakeBuilder().WithTimings(fastTimings(100, 100)))
		run = start(engine)

		Eventually(func() uint64 { return engine.Position().Passes }, 3*time.Second).
			Should(BeNumerically(">=", 1))

		allRed := 0
		for _, s := range col.snapshotList() {
			if s.phase != PhaseAllRed {
				continue
			}

			allRed++
			Expect(s.snap.Lights).To(Equal(lights.AllRedState()))
		}
		Expect(allRed).To(BeNumerically(">=", lights.NumDirections))
	})

	It("should show exactly two yellows and no green in yellow snapshots", func() {
		build(MakeBuilder().WithTimings(fastTimings(100, 100)))
		run = start(engine)

		Eventually(func() uint64 { return engine.Position().Passes }, 3*time.Second).
			Should(BeNumerically(">=", 1))

		yellow := 0
		for _, s := range col.snapshotList() {
			if s.phase != PhaseYellow {
				continue
			}

			yellow++
			l := s.snap.Lights
			Expect(l.Count(func(f lights.Flags) bool { return f.Yellow })).To(Equal(2))
			Expect(l.Count(func(f lights.Flags) bool { return f.Green })).To(Equal(0))
		}
		Expect(yellow).To(BeNumerically(">=", lights.NumDirections))
	})

	It("should follow the documented timeline", func() {
		build(MakeBuilder().WithTimings(fastTimings(300, 200)))

		begin := time.Now()
		run = start(engine)

		Eventually(col.snapshotCount, 2*time.Second).
			Should(BeNumerically(">=", 5))

		events := col.phaseEvents()[:5]
		snaps := col.snapshotList()[:5]
		offset := func(i int) time.Duration { return events[i].at.Sub(begin) }

		Expect(events[0].evt.Phase).To(Equal(PhaseAllRed))
		Expect(snaps[0].snap.Lights).To(Equal(lights.AllRedState()))
		Expect(offset(0)).To(BeNumerically("<", 60*time.Millisecond))

		Expect(events[1].evt.Phase).To(Equal(PhaseGreen))
		Expect(events[1].evt.Current).To(Equal(lights.North))
		Expect(snaps[1].snap.Lights[lights.North]).
			To(Equal(lights.Flags{Green: true}))
		Expect(offset(1)).To(BeNumerically("~", 10*time.Millisecond, 60*time.Millisecond))

		Expect(events[2].evt.Phase).To(Equal(PhaseYellow))
		Expect(snaps[2].snap.Lights[lights.North]).
			To(Equal(lights.Flags{Yellow: true}))
		Expect(snaps[2].snap.Lights[lights.NorthEast]).
			To(Equal(lights.Flags{Yellow: true}))
		Expect(offset(2)).To(BeNumerically("~", 310*time.Millisecond, 60*time.Millisecond))

		Expect(events[3].evt.Phase).To(Equal(PhaseCleanup))
		Expect(snaps[3].snap.Lights[lights.North].Dark()).To(BeTrue())
		Expect(snaps[3].snap.Lights[lights.NorthEast].Dark()).To(BeTrue())
		Expect(offset(3)).To(BeNumerically("~", 510*time.Millisecond, 60*time.Millisecond))

		Expect(events[4].evt.Phase).To(Equal(PhaseAllRed))
		Expect(events[4].evt.Current).To(Equal(lights.NorthEast))
		Expect(snaps[4].snap.Lights).To(Equal(lights.AllRedState()))
	})

	It("should freeze during a pause and restart green in full", func() {
		timings := fastTimings(100, 100)
		timings[lights.North].Green = 400 * time.Millisecond
		build(MakeBuilder().WithTimings(timings))
		run = start(engine)

		Eventually(func() bool { return engine.Status().Lights[lights.North].Green }).
			Should(BeTrue())
		time.Sleep(100 * time.Millisecond)
		engine.Pause()

		frozen := engine.Status()
		count := col.snapshotCount()
		Expect(frozen.Position.Phase).To(Equal(PhaseGreen))

		Consistently(func() lights.State { return engine.Status().Lights },
			300*time.Millisecond).Should(Equal(frozen.Lights))
		Expect(col.snapshotCount()).To(Equal(count))
		Expect(engine.Position().Phase).To(Equal(PhaseGreen))
		Expect(engine.Position().Remaining).To(BeNumerically(">", 0))

		resumedAt := time.Now()
		engine.Resume()

		var yellowAt time.Time
		Eventually(func() bool {
			for _, p := range col.phaseEvents() {
				if p.evt.Phase == PhaseYellow && p.evt.Current == lights.North {
					yellowAt = p.at
					return true
				}
			}
			return false
		}, 2*time.Second).Should(BeTrue())

		Expect(yellowAt.Sub(resumedAt)).To(BeNumerically(">=", 390*time.Millisecond))

		greens := 0
		for _, p := range col.phaseEvents() {
			if p.evt.Phase == PhaseGreen && p.evt.Current == lights.North {
				greens++
			}
		}
		Expect(greens).To(Equal(2))
	})

	It("should finish a paused green turn with its own directions after a reorder", func() {
		timings := fastTimings(100, 100)
		timings[lights.North].Green = 400 * time.Millisecond
		build(MakeBuilder().WithTimings(timings))
		run = start(engine)

		Eventually(func() bool {
			return col.entered(PhaseGreen, lights.North)
		}).Should(BeTrue())
		engine.Pause()
		Expect(engine.SetOrder([]int{4, 3, 2, 1, 0})).To(Succeed())

		pos := engine.Position()
		Expect(pos.Phase).To(Equal(PhaseGreen))
		Expect(pos.Current).To(Equal(lights.North))
		Expect(pos.Next).To(Equal(lights.NorthEast))

		before := len(col.phaseEvents())
		engine.Resume()

		Eventually(func() int { return len(col.phaseEvents()) }, 2*time.Second).
			Should(BeNumerically(">=", before+4))
		after := col.phaseEvents()[before : before+4]

		Expect(after[0].evt.Phase).To(Equal(PhaseGreen))
		Expect(after[0].evt.Current).To(Equal(lights.North))
		Expect(after[0].evt.Next).To(Equal(lights.NorthEast))
		Expect(after[1].evt.Phase).To(Equal(PhaseYellow))
		Expect(after[1].evt.Current).To(Equal(lights.North))
		Expect(after[1].evt.Next).To(Equal(lights.NorthEast))
		Expect(after[2].evt.Phase).To(Equal(PhaseCleanup))
		Expect(after[3].evt.Phase).To(Equal(PhaseAllRed))
		Expect(after[3].evt.Current).To(Equal(lights.SouthWest))

		expectSafeLamps(col.snapshotList())
	})

	It("should restart a paused yellow for the same pair of directions", func() {
		timings := fastTimings(100, 100)
		timings[lights.North].Yellow = 400 * time.Millisecond
		build(MakeBuilder().WithTimings(timings))
		run = start(engine)

		Eventually(func() bool {
			return col.entered(PhaseYellow, lights.North)
		}, 2*time.Second).Should(BeTrue())
		engine.Pause()
		Expect(engine.SetOrder([]int{0, 3, 1, 2, 4})).To(Succeed())

		frozen := engine.Status()
		Expect(frozen.Position.Phase).To(Equal(PhaseYellow))
		Expect(frozen.Position.Current).To(Equal(lights.North))
		Expect(frozen.Position.Next).To(Equal(lights.NorthEast))
		Consistently(func() lights.State { return engine.Status().Lights },
			200*time.Millisecond).Should(Equal(frozen.Lights))

		before := len(col.phaseEvents())
		resumedAt := time.Now()
		engine.Resume()

		Eventually(func() int { return len(col.phaseEvents()) }, 2*time.Second).
			Should(BeNumerically(">=", before+2))
		after := col.phaseEvents()[before : before+2]

		Expect(after[0].evt.Phase).To(Equal(PhaseYellow))
		Expect(after[0].evt.Current).To(Equal(lights.North))
		Expect(after[0].evt.Next).To(Equal(lights.NorthEast))
		Expect(after[1].evt.Phase).To(Equal(PhaseCleanup))
		Expect(after[1].at.Sub(resumedAt)).
			To(BeNumerically(">=", 390*time.Millisecond))

		expectSafeLamps(col.snapshotList())
	})

	It("should restart a paused all-red for the direction it was leading to", func() {
		build(MakeBuilder().
			WithTimings(fastTimings(100, 100)).
			WithAllRedDuration(400 * time.Millisecond))
		run = start(engine)

		Eventually(func() bool {
			return col.entered(PhaseAllRed, lights.North)
		}).Should(BeTrue())
		engine.Pause()
		Expect(engine.SetOrder([]int{2, 0, 1, 3, 4})).To(Succeed())

		Expect(engine.Position().Phase).To(Equal(PhaseAllRed))
		Expect(engine.Position().Current).To(Equal(lights.North))
		Consistently(func() lights.State { return engine.Status().Lights },
			200*time.Millisecond).Should(Equal(lights.AllRedState()))

		before := len(col.phaseEvents())
		engine.Resume()

		Eventually(func() int { return len(col.phaseEvents()) }, 2*time.Second).
			Should(BeNumerically(">=", before+2))
		after := col.phaseEvents()[before : before+2]

		Expect(after[0].evt.Phase).To(Equal(PhaseAllRed))
		Expect(after[0].evt.Current).To(Equal(lights.North))
		Expect(after[1].evt.Phase).To(Equal(PhaseGreen))
		Expect(after[1].evt.Current).To(Equal(lights.North))
		Expect(after[1].evt.Next).To(Equal(lights.NorthEast))

		expectSafeLamps(col.snapshotList())
	})

	It("should stop promptly when the context ends", func() {
		build(MakeBuilder())
		run = start(engine)

		begin := time.Now()
		run.stop()
		run = nil

		Expect(time.Since(begin)).To(BeNumerically("<", 500*time.Millisecond))
		Expect(engine.Running()).To(BeFalse())
	})

	It("should stop while paused", func() {
		build(MakeBuilder())
		engine.Pause()
		run = start(engine)

		Consistently(col.snapshotCount, 100*time.Millisecond).Should(BeZero())
	})
})
