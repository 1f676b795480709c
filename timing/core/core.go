// Package core provides the cycle-accurate CPU core model.
// It wraps the pipeline implementation to provide a high-level interface.
package core

import (
	"github.com/sarchlab/mipspipe/emu"
	"github.com/sarchlab/mipspipe/insts"
	"github.com/sarchlab/mipspipe/timing/latency"
	"github.com/sarchlab/mipspipe/timing/pipeline"
)

// Stats holds performance statistics for the core: the total cycle count
// and each stage's fraction of cycles doing useful work.
type Stats struct {
	Cycles      uint64
	Utilization pipeline.Utilization
}

// Core bundles a pipeline with the register file and memories it operates
// on, loading a program once at construction. It is the seam cmd/mipssim
// drives: parse a program, build a Core, run it, report its Stats.
type Core struct {
	pipeline *pipeline.Pipeline
	regFile  *emu.RegisterFile
	instMem  *emu.InstructionMemory
	dataMem  *emu.DataMemory
}

// NewCore builds a Core ready to run program, with the given latency
// configuration governing the EX and MEM/IF stage timings.
func NewCore(program []insts.Instruction, cfg *latency.Config) (*Core, error) {
	im, err := emu.NewInstructionMemory(program)
	if err != nil {
		return nil, err
	}
	dm := emu.NewDataMemory()
	regs := &emu.RegisterFile{}

	return &Core{
		pipeline: pipeline.NewPipeline(regs, im, dm, cfg),
		regFile:  regs,
		instMem:  im,
		dataMem:  dm,
	}, nil
}

// PC returns the current program counter.
func (c *Core) PC() int {
	return c.pipeline.PC()
}

// Tick executes one simulation cycle.
func (c *Core) Tick() error {
	return c.pipeline.Tick()
}

// Halted reports whether HALT has retired through writeback.
func (c *Core) Halted() bool {
	return c.pipeline.Halted()
}

// Run ticks the core until it halts.
func (c *Core) Run() error {
	return c.pipeline.Run()
}

// Registers returns a snapshot of the register file.
func (c *Core) Registers() [emu.NumRegisters]int32 {
	return c.pipeline.Registers()
}

// Stats returns the core's current cycle count and stage utilization.
func (c *Core) Stats() Stats {
	pipeStats := c.pipeline.Stats()
	return Stats{
		Cycles:      pipeStats.SimCycle,
		Utilization: pipeStats.Utilization,
	}
}
