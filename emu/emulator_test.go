package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/iammadab/lc3/emu"
)

var _ = Describe("Emulator", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	It("adds in register mode", func() {
		// Pre: R3=4, R4=5. ADD R2, R3, R4.
		e.RegFile().WriteReg(emu.R3, 4)
		e.RegFile().WriteReg(emu.R4, 5)
		e.Memory().LoadProgram(0x3000, []uint16{0b0001_010_011_000_100})
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(e.RegFile().ReadReg(emu.R2)).To(Equal(uint16(9)))
		Expect(e.RegFile().COND).To(Equal(emu.FlagPOS))
	})

	It("adds in immediate mode", func() {
		// Pre: R3=4. ADD R2, R3, #7.
		e.RegFile().WriteReg(emu.R3, 4)
		e.Memory().LoadProgram(0x3000, []uint16{0b0001_010_011_1_00111})
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(e.RegFile().ReadReg(emu.R2)).To(Equal(uint16(11)))
		Expect(e.RegFile().COND).To(Equal(emu.FlagPOS))
	})

	It("ADD with imm5=-1 and R3=0 wraps to 0xFFFF and sets NEG", func() {
		e.RegFile().WriteReg(emu.R3, 0)
		// ADD R2, R3, #-1 (imm5 = 0b11111)
		e.Memory().LoadProgram(0x3000, []uint16{0b0001_010_011_1_11111})
		e.RegFile().PC = 0x3000

		e.Step()

		Expect(e.RegFile().ReadReg(emu.R2)).To(Equal(uint16(0xFFFF)))
		Expect(e.RegFile().COND).To(Equal(emu.FlagNEG))
	})

	It("loads indirect through a pointer cell", func() {
		// Pre: MEM[5]=42, MEM[10]=5, PC=2. LDI R2, #7 (so PC+1+7 = 10).
		e.Memory().LoadProgram(5, []uint16{42})
		e.Memory().LoadProgram(10, []uint16{5})
		e.Memory().LoadProgram(2, []uint16{0b1010_010_000000111})
		e.RegFile().PC = 2

		result := e.Step()

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(e.RegFile().ReadReg(emu.R2)).To(Equal(uint16(42)))
		Expect(e.RegFile().COND).To(Equal(emu.FlagPOS))
	})

	It("BR with nzp=000 never branches", func() {
		e.RegFile().COND = emu.FlagPOS | emu.FlagZRO | emu.FlagNEG // unreachable in practice, but exercises the mask
		e.Memory().LoadProgram(0x3000, []uint16{0b0000_000_000010000})
		e.RegFile().PC = 0x3000

		e.Step()

		Expect(e.RegFile().PC).To(Equal(uint16(0x3001)))
	})

	It("BR with nzp=111 always branches", func() {
		e.RegFile().COND = emu.FlagZRO
		e.Memory().LoadProgram(0x3000, []uint16{0b0000_111_000010000})
		e.RegFile().PC = 0x3000

		e.Step()

		Expect(e.RegFile().PC).To(Equal(uint16(0x3001 + 0x10)))
	})

	It("outputs a string via TRAP PUTS", func() {
		console := &fakeConsole{}
		e = emu.NewEmulator(emu.WithConsole(console))
		e.RegFile().WriteReg(emu.R0, 0x4000)
		e.Memory().Write(0x4000, uint16('H'))
		e.Memory().Write(0x4001, uint16('i'))
		e.Memory().Write(0x4002, 0)
		e.Memory().LoadProgram(0x3000, []uint16{0xF022}) // TRAP x22 PUTS
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(string(console.output)).To(Equal("Hi"))
	})

	It("halts cleanly on TRAP HALT", func() {
		e.Memory().LoadProgram(0x3000, []uint16{0xF025}) // TRAP x25 HALT
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(result.Halted).To(BeTrue())
	})

	It("loads a program and runs it to completion", func() {
		e.LoadProgram(0x3000, []uint16{0xF025})

		Expect(e.RegFile().PC).To(Equal(uint16(0x3000)))
		Expect(e.Memory().Read(0x3000)).To(Equal(uint16(0xF025)))

		err := e.Run()

		Expect(err).NotTo(HaveOccurred())
	})

	It("treats RTI as a fatal illegal opcode", func() {
		e.Memory().LoadProgram(0x3000, []uint16{0b1000_000_000000000})
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).To(MatchError(emu.ErrIllegalOpcode))
	})

	It("treats RES as a fatal illegal opcode", func() {
		e.Memory().LoadProgram(0x3000, []uint16{0b1101_000_000000000})
		e.RegFile().PC = 0x3000

		result := e.Step()

		Expect(result.Err).To(MatchError(emu.ErrIllegalOpcode))
	})

	It("advances PC before dispatch so PC-relative offsets are relative to the next instruction", func() {
		// LEA R0, #0 at 0x3000: effective address should be 0x3001, not 0x3000.
		e.Memory().LoadProgram(0x3000, []uint16{0b1110_000_000000000})
		e.RegFile().PC = 0x3000

		e.Step()

		Expect(e.RegFile().ReadReg(emu.R0)).To(Equal(uint16(0x3001)))
	})

	Describe("non-flag-updating handlers leave COND untouched", func() {
		It("ST does not touch COND", func() {
			e.RegFile().COND = emu.FlagNEG
			e.RegFile().WriteReg(emu.R0, 99)
			e.Memory().LoadProgram(0x3000, []uint16{0b0011_000_000000001})
			e.RegFile().PC = 0x3000

			e.Step()

			Expect(e.RegFile().COND).To(Equal(emu.FlagNEG))
		})

		It("JMP does not touch COND", func() {
			e.RegFile().COND = emu.FlagPOS
			e.RegFile().WriteReg(emu.R7, 0x5000)
			e.Memory().LoadProgram(0x3000, []uint16{0b1100_000_111_000000})
			e.RegFile().PC = 0x3000

			e.Step()

			Expect(e.RegFile().COND).To(Equal(emu.FlagPOS))
			Expect(e.RegFile().PC).To(Equal(uint16(0x5000)))
		})
	})
})
