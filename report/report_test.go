package report_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/emu"
	"github.com/sarchlab/mipspipe/report"
	"github.com/sarchlab/mipspipe/timing/pipeline"
)

var _ = Describe("Utilization", func() {
	It("passes through a non-zero-cycle utilization unchanged", func() {
		util := pipeline.Utilization{IF: 0.5, ID: 0.5, EX: 0.25, MEM: 0.1, WB: 0.25}
		Expect(report.Utilization(util, 10)).To(Equal(util))
	})

	It("reports all-zero utilization for a zero sim-cycle count", func() {
		util := pipeline.Utilization{IF: 1, ID: 1, EX: 1, MEM: 1, WB: 1}
		Expect(report.Utilization(util, 0)).To(Equal(pipeline.Utilization{}))
	})
})

var _ = Describe("WriteBatch", func() {
	It("writes exactly three lines in the documented order", func() {
		var buf bytes.Buffer
		var regs [emu.NumRegisters]int32
		regs[8] = 5
		regs[9] = 7
		regs[10] = 12

		util := pipeline.Utilization{IF: 0.5, ID: 0.4, EX: 0.3, MEM: 0.2, WB: 0.1}
		Expect(report.WriteBatch(&buf, "program.asm", util, regs, 16)).To(Succeed())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(Equal("program name: program.asm"))
		Expect(lines[1]).To(ContainSubstring("stage utilization:"))
		Expect(lines[2]).To(HavePrefix("register values "))
		Expect(lines[2]).To(HaveSuffix("16"))
	})
})

var _ = Describe("WriteSingleStep", func() {
	It("writes the cycle banner and consumes one line from the prompt reader", func() {
		var buf bytes.Buffer
		var regs [emu.NumRegisters]int32
		regs[8] = 42

		prompt := strings.NewReader("\n")
		Expect(report.WriteSingleStep(&buf, prompt, 3, regs, 4)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("cycle: 3"))
		Expect(out).To(ContainSubstring("program counter: 4"))
		Expect(out).To(ContainSubstring("press ENTER to continue"))
	})
})
