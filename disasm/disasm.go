// Package disasm renders a decoded LC-3 instruction as one line of
// human-readable mnemonic text, without executing it.
package disasm

import (
	"fmt"

	"github.com/iammadab/lc3/insts"
)

var decoder = insts.NewDecoder()

// Disassemble decodes word and formats it per the disassembly text
// format: one line per instruction, mnemonic followed by its operands.
func Disassemble(word uint16) string {
	inst := decoder.Decode(word)
	return Format(inst)
}

// Format renders an already-decoded instruction as disassembly text.
func Format(inst insts.Instruction) string {
	switch inst.Op {
	case insts.OpBR:
		return fmt.Sprintf("BR %b %d", inst.NZP, int16(inst.Offset))
	case insts.OpADD, insts.OpAND:
		if inst.Flag == 0 {
			return fmt.Sprintf("%s %s %s %s", inst.Op, reg(inst.DR), reg(inst.SR1), reg(inst.SR2))
		}
		return fmt.Sprintf("%s %s %s %d", inst.Op, reg(inst.DR), reg(inst.SR1), int16(inst.Imm5))
	case insts.OpLD, insts.OpLDI, insts.OpST, insts.OpSTI, insts.OpLEA:
		return fmt.Sprintf("%s %s %d", inst.Op, reg(inst.DR), int16(inst.Offset))
	case insts.OpJSR:
		if inst.Flag == 1 {
			return fmt.Sprintf("JSR %d", int16(inst.Offset))
		}
		return fmt.Sprintf("JSRR %s", reg(inst.BaseR))
	case insts.OpLDR, insts.OpSTR:
		return fmt.Sprintf("%s %s %s %d", inst.Op, reg(inst.DR), reg(inst.BaseR), int16(inst.Offset))
	case insts.OpNOT:
		return fmt.Sprintf("NOT %s %s", reg(inst.DR), reg(inst.SR1))
	case insts.OpJMP:
		return fmt.Sprintf("JMP %s", reg(inst.BaseR))
	case insts.OpRTI, insts.OpRES:
		return fmt.Sprintf("%s unused", inst.Op)
	case insts.OpTRAP:
		return fmt.Sprintf("TRAP %s", trapName(inst.TrapCode))
	default:
		return "???"
	}
}

func trapName(code uint16) string {
	switch code {
	case insts.TrapGETC:
		return "GETC"
	case insts.TrapOUT:
		return "OUT"
	case insts.TrapPUTS:
		return "PUTS"
	case insts.TrapIN:
		return "IN"
	case insts.TrapPUTSP:
		return "PUTSp"
	case insts.TrapHALT:
		return "HALT"
	default:
		return "unrecognized"
	}
}

// reg names a general-purpose register by its 3-bit index.
func reg(index uint16) string {
	return fmt.Sprintf("R%d", index)
}
