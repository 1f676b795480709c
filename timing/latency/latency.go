package latency

import (
	"github.com/sarchlab/mipspipe/insts"
)

// Table resolves an EX-stage latency from a Config.
type Table struct {
	config *Config
}

// NewTable creates a new latency table with the default m=3, n=2, c=2
// configuration.
func NewTable() *Table {
	return &Table{
		config: DefaultConfig(),
	}
}

// NewTableWithConfig creates a new latency table over the given config.
func NewTableWithConfig(config *Config) *Table {
	return &Table{
		config: config,
	}
}

// ExecLatency returns the number of EX cycles the instruction takes:
// Mul for MUL, Other for every other EX-bearing op.
func (t *Table) ExecLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return t.config.Other
	}
	if inst.Op == insts.OpMUL {
		return t.config.Mul
	}
	return t.config.Other
}

// FetchMemLatency returns the number of cycles IF and MEM each take to
// complete a single access.
func (t *Table) FetchMemLatency() uint64 {
	return t.config.MemIF
}

// IsMemoryOp returns true if the instruction accesses data memory.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpLW || inst.Op == insts.OpSW
}

// Config returns the underlying configuration.
func (t *Table) Config() *Config {
	return t.config
}
