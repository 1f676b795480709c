package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipspipe/emu"
)

var _ = Describe("RegisterFile", func() {
	var rf *emu.RegisterFile

	BeforeEach(func() {
		rf = &emu.RegisterFile{}
	})

	It("reads zero-initialized registers as 0", func() {
		Expect(rf.Read(5)).To(Equal(int32(0)))
	})

	It("stores and retrieves a written value", func() {
		rf.Write(5, 42)
		Expect(rf.Read(5)).To(Equal(int32(42)))
	})

	It("always reads register 0 as 0", func() {
		Expect(rf.Read(0)).To(Equal(int32(0)))
	})

	It("silently drops writes to register 0", func() {
		rf.Write(0, 123)
		Expect(rf.Read(0)).To(Equal(int32(0)))
	})

	It("snapshots the full register array", func() {
		rf.Write(1, 10)
		rf.Write(31, 20)
		snap := rf.Snapshot()
		Expect(snap[1]).To(Equal(int32(10)))
		Expect(snap[31]).To(Equal(int32(20)))
		Expect(snap[0]).To(Equal(int32(0)))
	})
})
