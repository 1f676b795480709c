package emu

import (
	"fmt"

	"github.com/sarchlab/mipspipe/insts"
)

// MaxInstructions is the size of instruction memory in instructions: a
// longer program is rejected when it is loaded, and a fetch at or past
// slot MaxInstructions is a fatal operational error.
const MaxInstructions = 512

// MaxDataWords is the size of data memory in 32-bit words.
const MaxDataWords = 512

// InstructionMemory is a bounded, word-addressed array of decoded
// instructions: a byte address pc maps to slot pc/4. It is populated once
// before the pipeline starts and never mutated afterward.
type InstructionMemory struct {
	words [MaxInstructions]insts.Instruction
	n     int
}

// NewInstructionMemory loads program into a fresh instruction memory.
// Returns an error if the program exceeds MaxInstructions.
func NewInstructionMemory(program []insts.Instruction) (*InstructionMemory, error) {
	if len(program) > MaxInstructions {
		return nil, fmt.Errorf("instruction memory overflow: program has %d instructions, limit is %d",
			len(program), MaxInstructions)
	}
	im := &InstructionMemory{n: len(program)}
	copy(im.words[:], program)
	return im, nil
}

// Len returns the number of loaded instructions.
func (m *InstructionMemory) Len() int {
	return m.n
}

// Fetch returns the instruction at word address pc/4. Unlike Len, the
// bound here is the full MaxInstructions array, not the loaded program's
// length: a fetch past the program but still inside the array returns a
// zero-valued Instruction (op OpUnknown), which every stage treats as a
// harmless pass-through. A program that loops without ever reaching
// HALT eventually runs PC past the array itself, which is the real
// operational error this reports.
func (m *InstructionMemory) Fetch(pc int) (insts.Instruction, error) {
	if pc < 0 || pc%4 != 0 {
		return insts.Instruction{}, fmt.Errorf("program counter %d is not a non-negative multiple of 4", pc)
	}
	word := pc / 4
	if word >= MaxInstructions {
		return insts.Instruction{}, fmt.Errorf("program counter %d ran past the end of instruction memory without reaching HALT", pc)
	}
	return m.words[word], nil
}

// DataMemory is a bounded array of 512 signed 32-bit words, addressed by
// byte offset. Read and Write reject a negative, misaligned or
// out-of-range address.
type DataMemory struct {
	words [MaxDataWords]int32
}

// NewDataMemory returns a zero-initialized data memory.
func NewDataMemory() *DataMemory {
	return &DataMemory{}
}

// Read returns the word at byte address addr.
func (m *DataMemory) Read(addr int32) (int32, error) {
	idx, err := dataIndex(addr)
	if err != nil {
		return 0, err
	}
	return m.words[idx], nil
}

// Write stores value at byte address addr.
func (m *DataMemory) Write(addr int32, value int32) error {
	idx, err := dataIndex(addr)
	if err != nil {
		return err
	}
	m.words[idx] = value
	return nil
}

func dataIndex(addr int32) (int32, error) {
	if addr < 0 || addr%4 != 0 || int(addr/4) >= MaxDataWords {
		return 0, fmt.Errorf("data memory access out of range: address %d", addr)
	}
	return addr / 4, nil
}
