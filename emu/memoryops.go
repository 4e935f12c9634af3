package emu

import "github.com/iammadab/lc3/insts"

// executeLD implements LD: R[dr] = MEM[PC + offset], flags updated.
func (e *Emulator) executeLD(inst insts.Instruction) {
	addr := e.regFile.PC + inst.Offset
	e.regFile.WriteReg(inst.DR, e.memory.Read(addr))
	e.regFile.UpdateFlags(inst.DR)
}

// executeLDI implements LDI: R[dr] = MEM[MEM[PC + offset]], flags updated.
func (e *Emulator) executeLDI(inst insts.Instruction) {
	pointer := e.memory.Read(e.regFile.PC + inst.Offset)
	e.regFile.WriteReg(inst.DR, e.memory.Read(pointer))
	e.regFile.UpdateFlags(inst.DR)
}

// executeLDR implements LDR: R[dr] = MEM[R[base_r] + offset], flags updated.
func (e *Emulator) executeLDR(inst insts.Instruction) {
	addr := e.regFile.ReadReg(inst.BaseR) + inst.Offset
	e.regFile.WriteReg(inst.DR, e.memory.Read(addr))
	e.regFile.UpdateFlags(inst.DR)
}

// executeLEA implements LEA: R[dr] = PC + offset, flags updated.
func (e *Emulator) executeLEA(inst insts.Instruction) {
	e.regFile.WriteReg(inst.DR, e.regFile.PC+inst.Offset)
	e.regFile.UpdateFlags(inst.DR)
}

// executeST implements ST: MEM[PC + offset] = R[dr]. Store instructions
// encode their source register in bits[11:9], which the decoder aliases
// to DR; no flag update.
func (e *Emulator) executeST(inst insts.Instruction) {
	addr := e.regFile.PC + inst.Offset
	e.memory.Write(addr, e.regFile.ReadReg(inst.DR))
}

// executeSTI implements STI: MEM[MEM[PC + offset]] = R[dr]. No flag update.
func (e *Emulator) executeSTI(inst insts.Instruction) {
	pointer := e.memory.Read(e.regFile.PC + inst.Offset)
	e.memory.Write(pointer, e.regFile.ReadReg(inst.DR))
}

// executeSTR implements STR: MEM[R[base_r] + offset] = R[dr]. No flag update.
func (e *Emulator) executeSTR(inst insts.Instruction) {
	addr := e.regFile.ReadReg(inst.BaseR) + inst.Offset
	e.memory.Write(addr, e.regFile.ReadReg(inst.DR))
}
