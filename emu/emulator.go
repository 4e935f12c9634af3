package emu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/iammadab/lc3/insts"
)

// ErrIllegalOpcode is returned when RTI or RES is fetched; both are
// unused opcodes and are fatal to the running machine.
var ErrIllegalOpcode = errors.New("emu: illegal opcode")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if TRAP HALT terminated the program.
	Halted bool

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes LC-3 instructions against a register file and memory.
type Emulator struct {
	regFile     *RegFile
	memory      *Memory
	decoder     *insts.Decoder
	trapHandler TrapHandler
	console     Console
	logger      *slog.Logger

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithConsole sets the console used for device-register polling and trap
// I/O. Defaults to a no-op console if never set.
func WithConsole(c Console) EmulatorOption {
	return func(e *Emulator) {
		e.console = c
	}
}

// WithTrapHandler overrides the default TRAP service routine handler.
func WithTrapHandler(h TrapHandler) EmulatorOption {
	return func(e *Emulator) {
		e.trapHandler = h
	}
}

// WithLogger sets the structured logger used for fatal-condition
// diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = l
	}
}

// WithMaxInstructions sets the maximum number of instructions to
// execute. A value of 0 means no limit.
func WithMaxInstructions(maxInst uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = maxInst
	}
}

// NewEmulator creates a new LC-3 emulator in its reset state: all
// registers zero, memory zero-filled.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		decoder: insts.NewDecoder(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.console == nil {
		e.console = noopConsole{}
	}
	e.memory = NewMemory(e.console)
	if e.trapHandler == nil {
		e.trapHandler = NewDefaultTrapHandler(e.console)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions executed so far.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram loads words into memory starting at origin and sets PC to
// origin, per the object-loader contract in §4.6.
func (e *Emulator) LoadProgram(origin uint16, words []uint16) {
	e.memory.LoadProgram(origin, words)
	e.regFile.PC = origin
}

// Step executes a single instruction: fetch, increment PC, decode,
// dispatch.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: fmt.Errorf("emu: max instructions reached")}
	}

	word := e.memory.Read(e.regFile.PC)
	e.regFile.PC++
	inst := e.decoder.Decode(word)

	result := e.execute(inst)
	e.instructionCount++

	return result
}

// Run executes instructions until HALT or a fatal error. It returns nil
// on a clean HALT and the fatal error otherwise.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			e.logger.Error("emulation halted on error", "err", result.Err, "pc", fmt.Sprintf("0x%04X", e.regFile.PC))
			return result.Err
		}
		if result.Halted {
			return nil
		}
	}
}

// execute dispatches a decoded instruction to its handler.
func (e *Emulator) execute(inst insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpADD:
		e.executeADD(inst)
	case insts.OpAND:
		e.executeAND(inst)
	case insts.OpNOT:
		e.executeNOT(inst)
	case insts.OpBR:
		e.executeBR(inst)
	case insts.OpJMP:
		e.executeJMP(inst)
	case insts.OpJSR:
		e.executeJSR(inst)
	case insts.OpLD:
		e.executeLD(inst)
	case insts.OpLDI:
		e.executeLDI(inst)
	case insts.OpLDR:
		e.executeLDR(inst)
	case insts.OpLEA:
		e.executeLEA(inst)
	case insts.OpST:
		e.executeST(inst)
	case insts.OpSTI:
		e.executeSTI(inst)
	case insts.OpSTR:
		e.executeSTR(inst)
	case insts.OpTRAP:
		return e.executeTRAP(inst)
	case insts.OpRTI, insts.OpRES:
		return StepResult{Err: fmt.Errorf("%w: %s at PC=0x%04X", ErrIllegalOpcode, inst.Op, e.regFile.PC-1)}
	}

	return StepResult{}
}

// executeTRAP dispatches to the trap handler and translates its result.
func (e *Emulator) executeTRAP(inst insts.Instruction) StepResult {
	result := e.trapHandler.Handle(inst.TrapCode, e.regFile, e.memory)
	return StepResult{Halted: result.Halted, Err: result.Err}
}

// noopConsole is the Console used when the caller never provides one: a
// non-interactive machine that always reports "no key pending" and
// discards writes.
type noopConsole struct{}

func (noopConsole) ReadByteBlocking() (byte, error) { return 0, fmt.Errorf("emu: no console attached") }
func (noopConsole) PollByte() (byte, bool, error)   { return 0, false, nil }
func (noopConsole) WriteByte(byte) error            { return nil }
func (noopConsole) Flush() error                    { return nil }
