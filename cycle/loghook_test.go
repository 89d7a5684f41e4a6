package cycle

import (
	"bytes"
	"log"

	"github.com/sarchlab/pentagon/hooking"
	"github.com/sarchlab/pentagon/lights"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LogHook", func() {
	var (
		buf  *bytes.Buffer
		hook *LogHook
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		hook = NewLogHook(log.New(buf, "", 0))
	})

	It("should print administrative lines", func() {
		hook.Func(hooking.HookCtx{Pos: HookPosAdmin, Item: PausedLine})

		Expect(buf.String()).To(Equal(PausedLine + "\n"))
	})

	It("should skip snapshots unless verbose", func() {
		snap := lights.Snapshot{Seq: 7, Lights: lights.AllRedState()}

		hook.Func(hooking.HookCtx{Pos: HookPosSnapshot, Item: snap})
		Expect(buf.String()).To(BeEmpty())

		hook.Verbose()
		hook.Func(hooking.HookCtx{Pos: HookPosSnapshot, Item: snap})
		Expect(buf.String()).To(Equal("#7 " + lights.AllRedState().Line() + "\n"))
	})

	It("should print phase changes when verbose", func() {
		hook.Verbose().Func(hooking.HookCtx{
			Pos: HookPosPhase,
			Item: PhaseEvent{
				Phase:   PhaseGreen,
				Current: lights.North,
				Next:    lights.NorthEast,
				Wait:    lights.MinDuration,
			},
		})

		Expect(buf.String()).To(Equal("GREEN NORTH (next NE) for 100ms\n"))
	})
})
