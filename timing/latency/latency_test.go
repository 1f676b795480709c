package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/insts"
	"github.com/sarchlab/mipspipe/timing/latency"
)

var _ = Describe("Config", func() {
	It("defaults to m=3, n=2, c=2", func() {
		c := latency.DefaultConfig()
		Expect(c.Mul).To(Equal(uint64(3)))
		Expect(c.Other).To(Equal(uint64(2)))
		Expect(c.MemIF).To(Equal(uint64(2)))
	})

	It("rejects a zero latency", func() {
		c := latency.DefaultConfig()
		c.Other = 0
		Expect(c.Validate()).To(HaveOccurred())
	})

	It("round-trips through a JSON file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "latency.json")

		c := &latency.Config{Mul: 5, Other: 1, MemIF: 4}
		Expect(c.SaveConfig(path)).To(Succeed())

		loaded, err := latency.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(c))
	})

	It("errors loading a missing file", func() {
		_, err := latency.LoadConfig(filepath.Join(os.TempDir(), "does-not-exist.json"))
		Expect(err).To(HaveOccurred())
	})

	It("clones independently of the original", func() {
		c := latency.DefaultConfig()
		clone := c.Clone()
		clone.Mul = 99
		Expect(c.Mul).To(Equal(uint64(3)))
	})
})

var _ = Describe("Table", func() {
	It("returns the mul latency for MUL", func() {
		table := latency.NewTableWithConfig(&latency.Config{Mul: 7, Other: 2, MemIF: 2})
		inst := insts.New(insts.OpMUL)
		Expect(table.ExecLatency(&inst)).To(Equal(uint64(7)))
	})

	It("returns the other latency for ADD", func() {
		table := latency.NewTableWithConfig(&latency.Config{Mul: 7, Other: 2, MemIF: 2})
		inst := insts.New(insts.OpADD)
		Expect(table.ExecLatency(&inst)).To(Equal(uint64(2)))
	})

	It("identifies LW/SW as memory ops", func() {
		table := latency.NewTable()
		lw := insts.New(insts.OpLW)
		add := insts.New(insts.OpADD)
		Expect(table.IsMemoryOp(&lw)).To(BeTrue())
		Expect(table.IsMemoryOp(&add)).To(BeFalse())
	})
})
