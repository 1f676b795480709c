package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/insts"
)

var _ = Describe("Instruction", func() {
	DescribeTable("KindOf",
		func(op insts.Op, want insts.Kind) {
			Expect(insts.KindOf(op)).To(Equal(want))
		},
		Entry("ADD is R-type", insts.OpADD, insts.KindR),
		Entry("SUB is R-type", insts.OpSUB, insts.KindR),
		Entry("MUL is R-type", insts.OpMUL, insts.KindR),
		Entry("ADDI is I-type", insts.OpADDI, insts.KindI),
		Entry("BEQ is I-type", insts.OpBEQ, insts.KindI),
		Entry("LW is I-type", insts.OpLW, insts.KindI),
		Entry("SW is I-type", insts.OpSW, insts.KindI),
		Entry("HALT has no kind", insts.OpHALT, insts.KindNA),
	)

	It("mirrors New's Kind from the opcode table", func() {
		inst := insts.New(insts.OpADDI)
		Expect(inst.Kind).To(Equal(insts.KindI))
	})

	DescribeTable("register read/write classification",
		func(op insts.Op, readsRs, readsRt, writes bool) {
			inst := insts.New(op)
			Expect(inst.ReadsRs()).To(Equal(readsRs))
			Expect(inst.ReadsRt()).To(Equal(readsRt))
			Expect(inst.WritesReg()).To(Equal(writes))
		},
		Entry("ADD reads both sources, writes Rd", insts.OpADD, true, true, true),
		Entry("ADDI reads Rs only, writes Rt", insts.OpADDI, true, false, true),
		Entry("LW reads Rs only, writes Rt", insts.OpLW, true, false, true),
		Entry("SW reads both sources, writes nothing", insts.OpSW, true, true, false),
		Entry("BEQ reads both sources, writes nothing", insts.OpBEQ, true, true, false),
		Entry("HALT reads and writes nothing", insts.OpHALT, false, false, false),
	)

	Describe("String", func() {
		It("formats an R-type instruction as op $rd, $rs, $rt", func() {
			inst := insts.Instruction{Op: insts.OpADD, Kind: insts.KindR, Rd: 3, Rs: 1, Rt: 2}
			Expect(inst.String()).To(Equal("add $3, $1, $2"))
		})

		It("formats LW/SW with the offset(base) operand syntax", func() {
			inst := insts.Instruction{Op: insts.OpLW, Kind: insts.KindI, Rt: 8, Rs: 9, Immediate: 4}
			Expect(inst.String()).To(Equal("lw $8, 4($9)"))
		})

		It("formats HALT with no operands", func() {
			inst := insts.New(insts.OpHALT)
			Expect(inst.String()).To(Equal("haltSimulation"))
		})
	})
})
