// Package insts defines the decoded instruction representation for the
// bounded MIPS subset the pipeline executes: ADD, ADDI, SUB, MUL, BEQ,
// LW, SW, and HALT, plus an OpDEADBEQ constant that no pipeline stage
// produces or consumes.
package insts

import "fmt"

// Op identifies the operation an instruction performs.
type Op uint8

// Supported opcodes.
const (
	OpUnknown Op = iota
	OpADD
	OpADDI
	OpSUB
	OpMUL
	OpBEQ
	OpLW
	OpSW
	OpHALT
	// OpDEADBEQ names a branch-already-resolved sentinel. No pipeline
	// stage produces or consumes it: decode tracks branch resolution
	// with its own wait counter.
	OpDEADBEQ
)

func (o Op) String() string {
	switch o {
	case OpADD:
		return "add"
	case OpADDI:
		return "addi"
	case OpSUB:
		return "sub"
	case OpMUL:
		return "mul"
	case OpBEQ:
		return "beq"
	case OpLW:
		return "lw"
	case OpSW:
		return "sw"
	case OpHALT:
		return "haltSimulation"
	case OpDEADBEQ:
		return "deadbeq"
	default:
		return "unknown"
	}
}

// Kind is the instruction-format tag: R-type, I-type, or none.
type Kind uint8

// Instruction kinds.
const (
	KindNA Kind = iota
	KindR
	KindI
)

func (k Kind) String() string {
	switch k {
	case KindR:
		return "R"
	case KindI:
		return "I"
	default:
		return "NA"
	}
}

// KindOf returns the instruction kind fixed for each opcode.
func KindOf(op Op) Kind {
	switch op {
	case OpADD, OpSUB, OpMUL:
		return KindR
	case OpADDI, OpBEQ, OpLW, OpSW:
		return KindI
	default:
		return KindNA
	}
}

// Instruction is a single decoded program instruction plus the scratch
// fields the pipeline latches use while it is in flight.
//
// Register semantics are fixed per opcode (see IDEXRegister and the stage
// types in timing/pipeline for how each stage interprets them):
//   - R-type (ADD, SUB, MUL): reads Rs and Rt, writes Rd.
//   - ADDI, LW: read Rs, write Rt; decode mirrors Rt into Rd.
//   - SW: reads Rs and Rt, writes nothing.
//   - BEQ: reads Rs and Rt, writes nothing.
//   - HALT: no operands.
type Instruction struct {
	Op   Op
	Kind Kind

	Rs int16 // source register index, or register contents once read by ID
	Rt int16
	Rd uint8 // destination register index

	Immediate int16 // signed 16-bit immediate or branch offset

	// ExResult is the scratch slot EX writes its computed value into.
	ExResult int32

	// Line is set by the parser for diagnostics only; Col is not set by
	// the parser and stays 0. The pipeline never reads either.
	Line int
	Col  int
}

// New builds an Instruction with its Kind derived from Op.
func New(op Op) Instruction {
	return Instruction{Op: op, Kind: KindOf(op)}
}

// ReadsRs reports whether the instruction's Rs field is a source register.
func (i Instruction) ReadsRs() bool {
	switch i.Op {
	case OpADD, OpSUB, OpMUL, OpADDI, OpBEQ, OpLW, OpSW:
		return true
	default:
		return false
	}
}

// ReadsRt reports whether the instruction's Rt field is a source register
// (as opposed to, for ADDI/LW, being the destination).
func (i Instruction) ReadsRt() bool {
	switch i.Op {
	case OpADD, OpSUB, OpMUL, OpBEQ, OpSW:
		return true
	default:
		return false
	}
}

// WritesReg reports whether the instruction writes a destination register
// (i.e. is not SW, BEQ, or HALT).
func (i Instruction) WritesReg() bool {
	switch i.Op {
	case OpADD, OpSUB, OpMUL, OpADDI, OpLW:
		return true
	default:
		return false
	}
}

func (i Instruction) String() string {
	switch i.Kind {
	case KindR:
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Op, i.Rd, i.Rs, i.Rt)
	case KindI:
		switch i.Op {
		case OpLW, OpSW:
			return fmt.Sprintf("%s $%d, %d($%d)", i.Op, i.Rt, i.Immediate, i.Rs)
		default:
			return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rt, i.Rs, i.Immediate)
		}
	default:
		return i.Op.String()
	}
}
