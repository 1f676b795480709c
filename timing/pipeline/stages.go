package pipeline

import (
	"github.com/sarchlab/mipspipe/emu"
	"github.com/sarchlab/mipspipe/insts"
	"github.com/sarchlab/mipspipe/timing/latency"
)

// FetchStage reads one instruction per IF/MEM-latency cycles from
// instruction memory, advancing PC as it goes. It stalls whenever its
// output latch is still occupied, which is how both downstream stalls
// and a branch-resolution freeze hold PC in place.
type FetchStage struct {
	im      *emu.InstructionMemory
	latency *latency.Table

	instCycles uint64

	UsefulCycles uint64
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(im *emu.InstructionMemory, table *latency.Table) *FetchStage {
	return &FetchStage{im: im, latency: table}
}

// Tick runs one cycle of fetch. pc is the pipeline's shared program
// counter; EX may have already updated it earlier in the same cycle to
// resolve a taken branch.
func (s *FetchStage) Tick(pc *int, ifid *IFIDRegister) error {
	s.instCycles++

	if ifid.Occupied {
		return nil
	}

	if s.instCycles < s.latency.FetchMemLatency() {
		return nil
	}

	inst, err := s.im.Fetch(*pc)
	if err != nil {
		return err
	}

	ifid.Inst = inst
	ifid.PC = *pc
	ifid.Occupied = true

	s.UsefulCycles += s.latency.FetchMemLatency()
	s.instCycles = 0
	*pc += 4

	return nil
}

// DecodeStage canonicalizes the destination register, checks for RAW
// hazards against every occupied downstream latch, reads source
// register values, and dispatches into ID/EX. It also owns the
// branch-resolution freeze: while branchWaitCycles is counting down,
// IF/ID stays parked (holding the already-dispatched branch) so Fetch
// cannot advance PC until EX has resolved it.
type DecodeStage struct {
	regs   *emu.RegisterFile
	hazard *HazardUnit
	table  *latency.Table

	branchWaitCycles int

	UsefulCycles uint64
}

// NewDecodeStage creates a new decode stage.
func NewDecodeStage(regs *emu.RegisterFile, table *latency.Table) *DecodeStage {
	return &DecodeStage{regs: regs, hazard: NewHazardUnit(), table: table}
}

// Tick runs one cycle of decode.
func (s *DecodeStage) Tick(ifid *IFIDRegister, idex *IDEXRegister, exmem *EXMEMRegister, memwb *MEMWBRegister) {
	if s.branchWaitCycles > 0 {
		s.branchWaitCycles--
		if s.branchWaitCycles == 0 {
			ifid.Clear()
		}
		return
	}

	if !ifid.Occupied || idex.Occupied {
		return
	}

	inst := ifid.Inst
	if inst.Op == insts.OpADDI || inst.Op == insts.OpLW {
		inst.Rd = uint8(inst.Rt)
	}

	if s.hazard.RAWHazard(&inst, idex, exmem, memwb) {
		return
	}

	if inst.ReadsRs() {
		inst.Rs = int16(s.regs.Read(uint8(inst.Rs)))
	}
	if inst.ReadsRt() {
		inst.Rt = int16(s.regs.Read(uint8(inst.Rt)))
	}

	idex.Inst = inst
	idex.PC = ifid.PC
	idex.Occupied = true
	s.UsefulCycles++

	if inst.Op == insts.OpBEQ {
		s.branchWaitCycles = int(s.table.Config().Other) + 1
		return
	}

	// HALT leaves IF/ID occupied permanently: IF can never fetch again,
	// freezing PC at the value set by HALT's own fetch.
	if inst.Op == insts.OpHALT {
		return
	}

	ifid.Clear()
}

// ExecuteStage computes the result for the instruction parked in ID/EX
// once its latency (Mul cycles for MUL, Other cycles for everything
// else) has elapsed, and resolves BEQ by writing the shared PC directly
// — relative to the branch's own fetch address, not the live PC, which
// by this point has already advanced past it.
type ExecuteStage struct {
	table *latency.Table

	instCycles uint64
	ready      bool

	UsefulCycles uint64
}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage(table *latency.Table) *ExecuteStage {
	return &ExecuteStage{table: table}
}

// Tick runs one cycle of execute. pc is the pipeline's shared program
// counter, written directly on a taken branch.
func (s *ExecuteStage) Tick(pc *int, idex *IDEXRegister, exmem *EXMEMRegister) {
	if !idex.Occupied {
		s.instCycles = 0
		s.ready = false
		return
	}

	if idex.Inst.Op == insts.OpHALT {
		if exmem.Occupied {
			return
		}
		exmem.Inst = idex.Inst
		exmem.PC = idex.PC
		exmem.Occupied = true
		idex.Clear()
		s.instCycles = 0
		s.ready = false
		return
	}

	s.instCycles++
	required := s.table.ExecLatency(&idex.Inst)

	if !s.ready && s.instCycles >= required {
		s.ready = true
		s.compute(pc, idex)
		s.UsefulCycles += required
	}

	if !s.ready || exmem.Occupied {
		return
	}

	exmem.Inst = idex.Inst
	exmem.PC = idex.PC
	exmem.Occupied = true
	idex.Clear()
	s.instCycles = 0
	s.ready = false
}

func (s *ExecuteStage) compute(pc *int, idex *IDEXRegister) {
	inst := &idex.Inst
	switch inst.Op {
	case insts.OpADD:
		inst.ExResult = int32(inst.Rs) + int32(inst.Rt)
	case insts.OpSUB:
		inst.ExResult = int32(inst.Rs) - int32(inst.Rt)
	case insts.OpMUL:
		inst.ExResult = int32(inst.Rs) * int32(inst.Rt)
	case insts.OpADDI:
		inst.ExResult = int32(inst.Rs) + int32(inst.Immediate)
	case insts.OpLW, insts.OpSW:
		inst.ExResult = int32(inst.Rs) + int32(inst.Immediate)
	case insts.OpBEQ:
		if inst.Rt == inst.Rs {
			*pc = idex.PC + 4*int(inst.Immediate)
		}
	}
}

// MemoryStage accesses data memory for LW/SW over FetchMemLatency
// cycles and passes every other instruction through in a single cycle.
// SW retires here; it never reaches Writeback.
type MemoryStage struct {
	dm    *emu.DataMemory
	table *latency.Table

	timer uint64

	UsefulCycles uint64
}

// NewMemoryStage creates a new memory stage.
func NewMemoryStage(dm *emu.DataMemory, table *latency.Table) *MemoryStage {
	return &MemoryStage{dm: dm, table: table}
}

// Tick runs one cycle of memory access.
func (s *MemoryStage) Tick(exmem *EXMEMRegister, memwb *MEMWBRegister) error {
	if !exmem.Occupied {
		return nil
	}

	inst := exmem.Inst

	if inst.Op != insts.OpLW && inst.Op != insts.OpSW {
		memwb.Inst = inst
		memwb.PC = exmem.PC
		memwb.Occupied = true
		exmem.Clear()
		return nil
	}

	if s.timer == 0 {
		s.timer = s.table.FetchMemLatency()
	}
	s.UsefulCycles++
	s.timer--

	if s.timer > 0 {
		return nil
	}

	switch inst.Op {
	case insts.OpSW:
		if err := s.dm.Write(inst.ExResult, int32(inst.Rt)); err != nil {
			return err
		}
	case insts.OpLW:
		value, err := s.dm.Read(inst.ExResult)
		if err != nil {
			return err
		}
		inst.ExResult = value
		memwb.Inst = inst
		memwb.PC = exmem.PC
		memwb.Occupied = true
	}

	exmem.Clear()
	return nil
}

// WritebackStage commits the final register write for instructions
// that produce a value, and raises the halt flag when HALT retires.
type WritebackStage struct {
	regs *emu.RegisterFile

	Halted       bool
	UsefulCycles uint64
}

// NewWritebackStage creates a new writeback stage.
func NewWritebackStage(regs *emu.RegisterFile) *WritebackStage {
	return &WritebackStage{regs: regs}
}

// Tick runs one cycle of writeback.
func (s *WritebackStage) Tick(memwb *MEMWBRegister) {
	if !memwb.Occupied {
		return
	}

	inst := memwb.Inst
	switch inst.Op {
	case insts.OpHALT:
		s.Halted = true
	case insts.OpADD, insts.OpSUB, insts.OpMUL, insts.OpADDI, insts.OpLW:
		s.regs.Write(inst.Rd, inst.ExResult)
		s.UsefulCycles++
	}

	memwb.Clear()
}
