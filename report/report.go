// Package report formats simulation results the way the original batch
// and single-step modes do: stage utilization, final register values, and
// the final program counter.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sarchlab/mipspipe/emu"
	"github.com/sarchlab/mipspipe/timing/pipeline"
)

// Utilization returns util, each stage's fraction of sim cycles spent
// doing useful work as computed by pipeline.Stats, unchanged. A zero
// sim-cycle count (no cycle has run yet) reports all-zero utilization.
func Utilization(util pipeline.Utilization, simCycles uint64) pipeline.Utilization {
	if simCycles == 0 {
		return pipeline.Utilization{}
	}
	return util
}

// WriteBatch writes the three-line batch-mode report: the program name,
// the five stage utilizations, and the final register values (1 through
// 31) followed by the final PC.
func WriteBatch(w io.Writer, name string, util pipeline.Utilization, regs [emu.NumRegisters]int32, pc int) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "program name: %s\n", name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "stage utilization: %f  %f  %f  %f  %f \n",
		util.IF, util.ID, util.EX, util.MEM, util.WB); err != nil {
		return err
	}

	if _, err := fmt.Fprint(bw, "register values "); err != nil {
		return err
	}
	for r := 1; r < emu.NumRegisters; r++ {
		if _, err := fmt.Fprintf(bw, "%d  ", regs[r]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "%d\n", pc); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteSingleStep writes one cycle's console banner in single-step mode:
// the cycle number, the live register values, the current PC, and a
// prompt that blocks on a line read from prompt before returning.
func WriteSingleStep(w io.Writer, prompt io.Reader, cycle uint64, regs [emu.NumRegisters]int32, pc int) error {
	if _, err := fmt.Fprintf(w, "cycle: %d register value: ", cycle); err != nil {
		return err
	}
	for r := 1; r < emu.NumRegisters; r++ {
		if _, err := fmt.Fprintf(w, "%d  ", regs[r]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nprogram counter: %d\n", pc); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "press ENTER to continue\n"); err != nil {
		return err
	}

	scanner := bufio.NewScanner(prompt)
	scanner.Scan()
	return scanner.Err()
}
