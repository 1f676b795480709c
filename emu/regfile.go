// Package emu provides the architectural state the pipeline operates on:
// the register file and the instruction/data memories, plus a functional
// interpreter used only to cross-check the pipeline's timing model.
package emu

// NumRegisters is the size of the MIPS general-purpose register file.
const NumRegisters = 32

// RegisterFile is an ordered sequence of 32 signed 32-bit words. Register
// 0 is wired to zero: reads always return 0 and writes are silently
// dropped.
type RegisterFile struct {
	regs [NumRegisters]int32
}

// Read returns the value of register r. Reading register 0 always
// returns 0.
func (f *RegisterFile) Read(r uint8) int32 {
	if r == 0 {
		return 0
	}
	return f.regs[r]
}

// Write stores value into register r. Writes to register 0 are
// silently dropped.
func (f *RegisterFile) Write(r uint8, value int32) {
	if r == 0 {
		return
	}
	f.regs[r] = value
}

// Snapshot returns a copy of the full register file, for reporting and
// test assertions.
func (f *RegisterFile) Snapshot() [NumRegisters]int32 {
	return f.regs
}
