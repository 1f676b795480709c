package emu

import (
	"fmt"

	"github.com/sarchlab/mipspipe/insts"
)

// Interpret runs program start to finish as a straight-line,
// instruction-by-instruction functional interpreter: no latches, no
// stalls, no multi-cycle timing. It exists solely as an independent
// oracle for the pipeline's m=n=c=1, no-hazard round-trip property: with
// unit latencies and no data/branch hazards in the program, the timed
// pipeline and this interpreter must agree on the final register file
// and PC. data may be nil, in which case a fresh, zeroed data memory is
// used; passing a non-nil memory lets a caller inspect store side
// effects afterward.
func Interpret(program []insts.Instruction, data *DataMemory) (regs [NumRegisters]int32, pc int, err error) {
	im, err := NewInstructionMemory(program)
	if err != nil {
		return regs, 0, err
	}
	dm := data
	if dm == nil {
		dm = NewDataMemory()
	}
	rf := &RegisterFile{}

	for {
		inst, err := im.Fetch(pc)
		if err != nil {
			return rf.Snapshot(), pc, err
		}

		nextPC := pc + 4

		switch inst.Op {
		case insts.OpHALT:
			return rf.Snapshot(), nextPC, nil

		case insts.OpADD:
			rf.Write(inst.Rd, rf.Read(uint8(inst.Rs))+rf.Read(uint8(inst.Rt)))

		case insts.OpSUB:
			rf.Write(inst.Rd, rf.Read(uint8(inst.Rs))-rf.Read(uint8(inst.Rt)))

		case insts.OpMUL:
			rf.Write(inst.Rd, rf.Read(uint8(inst.Rs))*rf.Read(uint8(inst.Rt)))

		case insts.OpADDI:
			rf.Write(uint8(inst.Rt), rf.Read(uint8(inst.Rs))+int32(inst.Immediate))

		case insts.OpLW:
			addr := rf.Read(uint8(inst.Rs)) + int32(inst.Immediate)
			value, err := dm.Read(addr)
			if err != nil {
				return rf.Snapshot(), pc, err
			}
			rf.Write(uint8(inst.Rt), value)

		case insts.OpSW:
			addr := rf.Read(uint8(inst.Rs)) + int32(inst.Immediate)
			if err := dm.Write(addr, rf.Read(uint8(inst.Rt))); err != nil {
				return rf.Snapshot(), pc, err
			}

		case insts.OpBEQ:
			// Target is relative to the branch's own address, matching the
			// pipeline's EX stage (timing/pipeline), which resolves BEQ
			// using the PC captured at fetch time rather than the live PC
			// (which has already advanced past the branch by the time EX
			// runs). See DESIGN.md for why this, and not PC+4+4*imm, is
			// the offset convention this implementation pins.
			if rf.Read(uint8(inst.Rs)) == rf.Read(uint8(inst.Rt)) {
				nextPC = pc + 4*int(inst.Immediate)
			}

		default:
			return rf.Snapshot(), pc, fmt.Errorf("interpret: unsupported opcode %s at pc=%d", inst.Op, pc)
		}

		pc = nextPC
	}
}
