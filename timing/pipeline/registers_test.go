package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/insts"
	"github.com/sarchlab/mipspipe/timing/pipeline"
)

var _ = Describe("Latches", func() {
	It("clears an IF/ID register back to empty", func() {
		r := pipeline.IFIDRegister{Occupied: true, PC: 12, Inst: insts.New(insts.OpADD)}
		r.Clear()
		Expect(r.Occupied).To(BeFalse())
		Expect(r.PC).To(Equal(0))
		Expect(r.Inst).To(Equal(insts.Instruction{}))
	})

	It("clears an ID/EX register back to empty", func() {
		r := pipeline.IDEXRegister{Occupied: true, PC: 8, Inst: insts.New(insts.OpMUL)}
		r.Clear()
		Expect(r.Occupied).To(BeFalse())
	})

	It("clears an EX/MEM register back to empty", func() {
		r := pipeline.EXMEMRegister{Occupied: true}
		r.Clear()
		Expect(r.Occupied).To(BeFalse())
	})

	It("clears a MEM/WB register back to empty", func() {
		r := pipeline.MEMWBRegister{Occupied: true}
		r.Clear()
		Expect(r.Occupied).To(BeFalse())
	})
})
