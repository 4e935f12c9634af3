package emu

import "github.com/iammadab/lc3/insts"

// executeBR implements BR: branch if (nzp & COND) != 0. No flag update.
func (e *Emulator) executeBR(inst insts.Instruction) {
	if inst.NZP&e.regFile.COND != 0 {
		e.regFile.PC += inst.Offset
	}
}

// executeJMP implements JMP: PC = R[base_r]. base_r=7 is the conventional
// RET. No flag update.
func (e *Emulator) executeJMP(inst insts.Instruction) {
	e.regFile.PC = e.regFile.ReadReg(inst.BaseR)
}

// executeJSR implements JSR/JSRR: R7 = PC, then PC = PC + offset11
// (flag==1, JSR) or PC = R[base_r] (flag==0, JSRR). No flag update.
func (e *Emulator) executeJSR(inst insts.Instruction) {
	e.regFile.WriteReg(R7, e.regFile.PC)
	if inst.Flag == 1 {
		e.regFile.PC += inst.Offset
	} else {
		e.regFile.PC = e.regFile.ReadReg(inst.BaseR)
	}
}
