package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/insts"
	"github.com/sarchlab/mipspipe/timing/pipeline"
)

var _ = Describe("HazardUnit", func() {
	var hazard *pipeline.HazardUnit

	BeforeEach(func() {
		hazard = pipeline.NewHazardUnit()
	})

	It("reports no hazard when no downstream latch is occupied", func() {
		inst := insts.Instruction{Op: insts.OpADD, Rs: 8, Rt: 9}
		idex, exmem, memwb := pipeline.IDEXRegister{}, pipeline.EXMEMRegister{}, pipeline.MEMWBRegister{}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeFalse())
	})

	It("stalls when ID/EX will write a source register", func() {
		inst := insts.Instruction{Op: insts.OpADD, Rs: 8, Rt: 9}
		idex := pipeline.IDEXRegister{Occupied: true, Inst: insts.Instruction{Op: insts.OpADD, Rd: 8}}
		exmem, memwb := pipeline.EXMEMRegister{}, pipeline.MEMWBRegister{}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeTrue())
	})

	It("stalls when EX/MEM will write a source register", func() {
		inst := insts.Instruction{Op: insts.OpADD, Rs: 8, Rt: 9}
		idex, memwb := pipeline.IDEXRegister{}, pipeline.MEMWBRegister{}
		exmem := pipeline.EXMEMRegister{Occupied: true, Inst: insts.Instruction{Op: insts.OpADD, Rd: 9}}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeTrue())
	})

	It("stalls when MEM/WB will write a source register", func() {
		inst := insts.Instruction{Op: insts.OpADD, Rs: 8, Rt: 9}
		idex, exmem := pipeline.IDEXRegister{}, pipeline.EXMEMRegister{}
		memwb := pipeline.MEMWBRegister{Occupied: true, Inst: insts.Instruction{Op: insts.OpADD, Rd: 9}}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeTrue())
	})

	It("ignores an occupied-flag-false latch even if its stale data matches", func() {
		inst := insts.Instruction{Op: insts.OpADD, Rs: 8, Rt: 9}
		idex, memwb := pipeline.IDEXRegister{}, pipeline.MEMWBRegister{}
		exmem := pipeline.EXMEMRegister{Occupied: false, Inst: insts.Instruction{Op: insts.OpADD, Rd: 8}}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeFalse())
	})

	It("does not stall SW on its destination-less hazard surface for unrelated registers", func() {
		inst := insts.Instruction{Op: insts.OpSW, Rs: 8, Rt: 9}
		idex, exmem := pipeline.IDEXRegister{}, pipeline.EXMEMRegister{}
		memwb := pipeline.MEMWBRegister{Occupied: true, Inst: insts.Instruction{Op: insts.OpADD, Rd: 10}}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeFalse())
	})

	It("does not stall on a non-writing occupant even when its zero-valued Rd matches a source", func() {
		// BEQ and SW never set Rd, so it sits at its Go zero value (register 0).
		// An occupying BEQ/SW must not be mistaken for a writer of $zero.
		inst := insts.Instruction{Op: insts.OpADD, Rs: 0, Rt: 9}
		idex, memwb := pipeline.IDEXRegister{}, pipeline.MEMWBRegister{}
		exmem := pipeline.EXMEMRegister{Occupied: true, Inst: insts.Instruction{Op: insts.OpSW, Rs: 8, Rt: 9}}
		Expect(hazard.RAWHazard(&inst, &idex, &exmem, &memwb)).To(BeFalse())
	})
})
