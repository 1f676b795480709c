package pipeline

import (
	"fmt"

	"github.com/sarchlab/mipspipe/emu"
	"github.com/sarchlab/mipspipe/timing/latency"
)

// FatalError wraps an operational error (out-of-range data access, or PC
// running past the end of instruction memory without reaching HALT)
// that aborts the simulation. Unlike a
// parse-time error, it can only occur once the pipeline is already
// running.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal pipeline error: %v", e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// Pipeline is the five-stage MIPS pipeline driver. It owns the four
// inter-stage latches and steps them one simulation cycle at a time in
// the mandatory reverse order WB, MEM, EX, ID, IF.
type Pipeline struct {
	fetch   *FetchStage
	decode  *DecodeStage
	execute *ExecuteStage
	memory  *MemoryStage
	writeback *WritebackStage

	ifid  IFIDRegister
	idex  IDEXRegister
	exmem EXMEMRegister
	memwb MEMWBRegister

	regs *emu.RegisterFile
	pc   int

	simCycle uint64
}

// NewPipeline builds a pipeline over the given architectural state and
// latency configuration. PC starts at 0.
func NewPipeline(regs *emu.RegisterFile, im *emu.InstructionMemory, dm *emu.DataMemory, cfg *latency.Config) *Pipeline {
	table := latency.NewTableWithConfig(cfg)
	return &Pipeline{
		fetch:     NewFetchStage(im, table),
		decode:    NewDecodeStage(regs, table),
		execute:   NewExecuteStage(table),
		memory:    NewMemoryStage(dm, table),
		writeback: NewWritebackStage(regs),
		regs:      regs,
	}
}

// PC returns the current program counter.
func (p *Pipeline) PC() int {
	return p.pc
}

// SimCycle returns the number of simulation cycles elapsed so far.
func (p *Pipeline) SimCycle() uint64 {
	return p.simCycle
}

// Halted reports whether HALT has retired through Writeback.
func (p *Pipeline) Halted() bool {
	return p.writeback.Halted
}

// Tick advances the pipeline by exactly one simulation cycle, invoking
// the five stages in the order WB, MEM, EX, ID, IF. This order is not
// incidental: it lets a downstream stage free its input latch, or a
// register write land, before the upstream producer of that state runs
// in the same cycle.
func (p *Pipeline) Tick() error {
	if p.Halted() {
		return nil
	}

	p.writeback.Tick(&p.memwb)

	if err := p.memory.Tick(&p.exmem, &p.memwb); err != nil {
		return &FatalError{Cause: err}
	}

	p.execute.Tick(&p.pc, &p.idex, &p.exmem)

	p.decode.Tick(&p.ifid, &p.idex, &p.exmem, &p.memwb)

	if err := p.fetch.Tick(&p.pc, &p.ifid); err != nil {
		return &FatalError{Cause: err}
	}

	p.simCycle++

	return nil
}

// Run ticks the pipeline until it halts or a fatal error occurs.
func (p *Pipeline) Run() error {
	for !p.Halted() {
		if err := p.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Utilization is the fraction of total simulation cycles that were
// useful work for a single stage.
type Utilization struct {
	IF, ID, EX, MEM, WB float64
}

// Stats summarizes a completed or in-progress run.
type Stats struct {
	SimCycle    uint64
	Utilization Utilization
}

// Stats reports the current cycle count and per-stage utilization.
func (p *Pipeline) Stats() Stats {
	total := float64(p.simCycle)
	if total == 0 {
		return Stats{SimCycle: p.simCycle}
	}
	return Stats{
		SimCycle: p.simCycle,
		Utilization: Utilization{
			IF:  float64(p.fetch.UsefulCycles) / total,
			ID:  float64(p.decode.UsefulCycles) / total,
			EX:  float64(p.execute.UsefulCycles) / total,
			MEM: float64(p.memory.UsefulCycles) / total,
			WB:  float64(p.writeback.UsefulCycles) / total,
		},
	}
}

// Registers returns a snapshot of the architectural register file.
func (p *Pipeline) Registers() [emu.NumRegisters]int32 {
	return p.regs.Snapshot()
}
