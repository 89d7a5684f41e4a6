package command

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	DescribeTable("should recognize commands",
		func(raw string, kind Kind, args []int) {
			cmd, err := Parse(raw)

			Expect(err).NotTo(HaveOccurred())
			Expect(cmd.Kind).To(Equal(kind))
			Expect(cmd.Args).To(Equal(args))
			Expect(cmd.Raw).To(Equal(raw))
		},
		Entry("pause", "!pause", KindPause, nil),
		Entry("resume with spaces", "  !resume ", KindResume, nil),
		Entry("status", "!status", KindStatus, nil),
		Entry("order", "!order 4,3,2,1,0", KindOrder, []int{4, 3, 2, 1, 0}),
		Entry("order with spaces", "!order 0, 1, 2, 3, 4", KindOrder, []int{0, 1, 2, 3, 4}),
		Entry("delay", "!delay 1,2,3,4,5,6,7,8,9,10,11,12,13,14,15", KindDelay,
			[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}),
	)

	DescribeTable("should reject unknown tokens",
		func(raw string) {
			_, err := Parse(raw)
			Expect(err).To(MatchError(ErrUnknown))
		},
		Entry("empty", ""),
		Entry("no bang", "pause"),
		Entry("other", "!dance"),
		Entry("glued argument", "!order0,1,2,3,4"),
	)

	DescribeTable("should reject malformed arguments",
		func(raw string) {
			_, err := Parse(raw)
			Expect(err).To(MatchError(ErrMalformed))
		},
		Entry("order without values", "!order"),
		Entry("short order", "!order 0,1,2"),
		Entry("non-numeric order", "!order 0,1,two,3,4"),
		Entry("short delay", "!delay 1,2,3"),
		Entry("non-numeric delay", "!delay 1,2,3,4,5,6,7,8,9,10,11,12,13,14,x"),
	)

	It("should name kinds by token", func() {
		Expect(KindOrder.String()).To(Equal("!order"))
		Expect(KindUnknown.String()).To(Equal("unknown"))
	})
})
