// Package pipeline implements the five-stage, in-order MIPS pipeline:
// IF, ID, EX, MEM, WB, connected by four single-slot latches and driven
// one cycle at a time in reverse order.
package pipeline

import (
	"github.com/sarchlab/mipspipe/insts"
)

// IFIDRegister is the latch between Fetch and Decode.
type IFIDRegister struct {
	// Occupied is the latch's occupancy flag: true means a valid
	// instruction is parked here waiting for Decode to consume it.
	Occupied bool

	// PC is the address this instruction was fetched from.
	PC int

	// Inst is the fetched, not-yet-decoded instruction.
	Inst insts.Instruction
}

// Clear empties the latch.
func (r *IFIDRegister) Clear() {
	r.Occupied = false
	r.PC = 0
	r.Inst = insts.Instruction{}
}

// IDEXRegister is the latch between Decode and Execute.
type IDEXRegister struct {
	Occupied bool

	// PC is the address Inst was fetched from, threaded through from
	// IFIDRegister.PC. EX needs this to resolve a taken BEQ relative to
	// the branch's own address rather than a live, already-advanced PC.
	PC int

	// Inst is the dispatched instruction. Decode overwrites Rs/Rt with
	// the register values they named (not their indices) for ops that
	// read them; Rd already holds the canonicalized destination. EX
	// later overwrites ExResult in place while the op is in flight.
	Inst insts.Instruction
}

func (r *IDEXRegister) Clear() {
	r.Occupied = false
	r.PC = 0
	r.Inst = insts.Instruction{}
}

// EXMEMRegister is the latch between Execute and Memory.
type EXMEMRegister struct {
	Occupied bool

	PC int

	// Inst carries ExResult: the ALU result for ADD/SUB/ADDI/MUL, the
	// effective address for LW/SW, or is unused for BEQ/HALT.
	Inst insts.Instruction
}

func (r *EXMEMRegister) Clear() {
	r.Occupied = false
	r.PC = 0
	r.Inst = insts.Instruction{}
}

// MEMWBRegister is the latch between Memory and Writeback.
type MEMWBRegister struct {
	Occupied bool

	PC int

	// Inst carries the value Writeback commits: ExResult already holds
	// the ALU result, or for LW has been overwritten with the loaded
	// word.
	Inst insts.Instruction
}

func (r *MEMWBRegister) Clear() {
	r.Occupied = false
	r.PC = 0
	r.Inst = insts.Instruction{}
}
