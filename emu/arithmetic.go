package emu

import "github.com/iammadab/lc3/insts"

// executeADD implements ADD: R[dr] = R[sr1] + (imm5 or R[sr2]), flags
// updated on R[dr].
func (e *Emulator) executeADD(inst insts.Instruction) {
	lhs := e.regFile.ReadReg(inst.SR1)
	var rhs uint16
	if inst.Flag == 1 {
		rhs = inst.Imm5
	} else {
		rhs = e.regFile.ReadReg(inst.SR2)
	}
	e.regFile.WriteReg(inst.DR, lhs+rhs)
	e.regFile.UpdateFlags(inst.DR)
}

// executeAND implements AND: R[dr] = R[sr1] & (imm5 or R[sr2]), flags
// updated on R[dr].
func (e *Emulator) executeAND(inst insts.Instruction) {
	lhs := e.regFile.ReadReg(inst.SR1)
	var rhs uint16
	if inst.Flag == 1 {
		rhs = inst.Imm5
	} else {
		rhs = e.regFile.ReadReg(inst.SR2)
	}
	e.regFile.WriteReg(inst.DR, lhs&rhs)
	e.regFile.UpdateFlags(inst.DR)
}

// executeNOT implements NOT: R[dr] = ^R[sr1], flags updated on R[dr].
func (e *Emulator) executeNOT(inst insts.Instruction) {
	e.regFile.WriteReg(inst.DR, ^e.regFile.ReadReg(inst.SR1))
	e.regFile.UpdateFlags(inst.DR)
}
