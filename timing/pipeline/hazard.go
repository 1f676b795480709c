package pipeline

import "github.com/sarchlab/mipspipe/insts"

// HazardUnit detects read-after-write hazards. There is no forwarding in
// this pipeline: the only resolution is stalling Decode until the
// producing instruction has retired through Writeback.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// RAWHazard reports whether the instruction waiting in IF/ID must stall
// because one of the sources it reads is still in flight as the
// destination of an occupied downstream latch (ID/EX, EX/MEM, or
// MEM/WB). A latch whose occupancy flag is false is stale and never
// blocks, regardless of what instruction record it still holds.
func (h *HazardUnit) RAWHazard(inst *insts.Instruction, idex *IDEXRegister, exmem *EXMEMRegister, memwb *MEMWBRegister) bool {
	if idex.Occupied && h.writesToOneOf(&idex.Inst, inst) {
		return true
	}
	if exmem.Occupied && h.writesToOneOf(&exmem.Inst, inst) {
		return true
	}
	if memwb.Occupied && h.writesToOneOf(&memwb.Inst, inst) {
		return true
	}
	return false
}

// writesToOneOf reports whether occupying is a producer inst must wait on:
// occupying has to actually write a register (BEQ/SW leave Rd at its zero
// value, which is not a write to $zero) and that register has to be one of
// inst's sources.
func (h *HazardUnit) writesToOneOf(occupying *insts.Instruction, inst *insts.Instruction) bool {
	if !occupying.WritesReg() {
		return false
	}
	dest := occupying.Rd
	if inst.ReadsRs() && uint8(inst.Rs) == dest {
		return true
	}
	if inst.ReadsRt() && uint8(inst.Rt) == dest {
		return true
	}
	return false
}
