package insts

// Op identifies one of the sixteen LC-3 opcodes by its 4-bit encoding.
type Op uint8

// LC-3 opcodes, in their wire-encoding order (bits[15:12] of the
// instruction word equal the Op's numeric value).
const (
	OpBR Op = iota
	OpADD
	OpLD
	OpST
	OpJSR
	OpAND
	OpLDR
	OpSTR
	OpRTI
	OpNOT
	OpLDI
	OpSTI
	OpJMP
	OpRES
	OpLEA
	OpTRAP
)

// String returns the mnemonic for op.
func (op Op) String() string {
	switch op {
	case OpBR:
		return "BR"
	case OpADD:
		return "ADD"
	case OpLD:
		return "LD"
	case OpST:
		return "ST"
	case OpJSR:
		return "JSR"
	case OpAND:
		return "AND"
	case OpLDR:
		return "LDR"
	case OpSTR:
		return "STR"
	case OpRTI:
		return "RTI"
	case OpNOT:
		return "NOT"
	case OpLDI:
		return "LDI"
	case OpSTI:
		return "STI"
	case OpJMP:
		return "JMP"
	case OpRES:
		return "RES"
	case OpLEA:
		return "LEA"
	case OpTRAP:
		return "TRAP"
	default:
		return "???"
	}
}

// TRAP vector codes, dispatched from Instruction.TrapCode.
const (
	TrapGETC  uint16 = 0x20
	TrapOUT   uint16 = 0x21
	TrapPUTS  uint16 = 0x22
	TrapIN    uint16 = 0x23
	TrapPUTSP uint16 = 0x24
	TrapHALT  uint16 = 0x25
)

// Instruction is a fully-populated decoded LC-3 instruction. Fields that
// are irrelevant to Op are still populated (decoding is unconditional);
// handlers simply ignore the fields they don't need.
//
// DR and NZP alias bits[11:9]; SR1 and BaseR alias bits[8:6]. Both names
// are kept on the struct rather than reshuffled per opcode, since LC-3
// itself overloads those bit positions for different purposes.
type Instruction struct {
	Op Op

	DR     uint16 // destination register (bits[11:9])
	SR1    uint16 // first source register (bits[8:6]), aliases BaseR
	SR2    uint16 // second source register (bits[2:0])
	BaseR  uint16 // base register (bits[8:6]), aliases SR1
	NZP    uint16 // branch condition mask (bits[11:9]), aliases DR
	Imm5   uint16 // sign-extended 5-bit immediate
	Offset uint16 // sign-extended PC/base offset, width is opcode-dependent

	TrapCode uint16 // low 8 bits, meaningful only for TRAP
	Flag     uint16 // mode bit, position is opcode-dependent
}

// Decoder decodes raw LC-3 instruction words into Instruction values. It
// carries no state today, but is a type (rather than a free function) so
// future decode-time configuration doesn't require an API break.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a single 16-bit instruction word. Decode is pure and
// total: every 4-bit opcode value (0..15) is a defined Op, including the
// unused RTI and RES slots, so Decode never fails.
func (d *Decoder) Decode(word uint16) Instruction {
	op := Op(word >> 12)

	inst := Instruction{
		Op:       op,
		DR:       (word >> 9) & Mask(3),
		SR1:      (word >> 6) & Mask(3),
		SR2:      word & Mask(3),
		Imm5:     Sext(word&Mask(5), 5),
		TrapCode: word & Mask(8),
	}
	inst.NZP = inst.DR
	inst.BaseR = inst.SR1

	switch op {
	case OpSTR, OpLDR:
		inst.Offset = Sext(word&Mask(6), 6)
	case OpJSR:
		inst.Offset = Sext(word&Mask(11), 11)
	default:
		inst.Offset = Sext(word&Mask(9), 9)
	}

	switch op {
	case OpADD, OpAND:
		inst.Flag = (word >> 5) & Mask(1)
	default:
		inst.Flag = (word >> 11) & Mask(1)
	}

	return inst
}
