package emu

import (
	"errors"
	"fmt"

	"github.com/iammadab/lc3/insts"
)

// ErrUnknownTrap is returned by a TrapHandler when it is asked to
// dispatch a trap_code outside the defined GETC/OUT/PUTS/IN/PUTSP/HALT
// set. It is fatal to the running machine.
var ErrUnknownTrap = errors.New("emu: unknown trap code")

// TrapResult carries the outcome of a single trap dispatch back to the
// execution loop.
type TrapResult struct {
	// Halted is true if the trap requests machine termination.
	Halted bool

	// Err is set if the trap failed (unknown code, console I/O failure).
	Err error
}

// TrapHandler executes the TRAP service routines. It is the layer where
// character I/O is grounded on an abstract Console, mirroring the
// register-convention-driven syscall dispatch a Linux-syscall emulator
// uses: a code selects the routine, registers carry the arguments.
type TrapHandler interface {
	// Handle executes the service routine for code, mutating regs and
	// console as needed.
	Handle(code uint16, regs *RegFile, mem *Memory) TrapResult
}

// DefaultTrapHandler implements the six TRAP vectors defined in §4.4:
// GETC, OUT, PUTS, IN, PUTSP, HALT.
type DefaultTrapHandler struct {
	console Console
}

// NewDefaultTrapHandler returns a TrapHandler that performs character
// I/O against console.
func NewDefaultTrapHandler(console Console) *DefaultTrapHandler {
	return &DefaultTrapHandler{console: console}
}

// Handle implements TrapHandler.
func (h *DefaultTrapHandler) Handle(code uint16, regs *RegFile, mem *Memory) TrapResult {
	switch code {
	case insts.TrapGETC:
		return h.handleGETC(regs)
	case insts.TrapOUT:
		return h.handleOUT(regs)
	case insts.TrapPUTS:
		return h.handlePUTS(regs, mem)
	case insts.TrapIN:
		return h.handleIN(regs)
	case insts.TrapPUTSP:
		return h.handlePUTSP(regs, mem)
	case insts.TrapHALT:
		return h.handleHALT()
	default:
		return h.handleUnknown(code)
	}
}

// handleGETC blocks for one byte from the console and stores it,
// unechoed, in R0.
func (h *DefaultTrapHandler) handleGETC(regs *RegFile) TrapResult {
	b, err := h.console.ReadByteBlocking()
	if err != nil {
		return TrapResult{Err: fmt.Errorf("trap GETC: %w", err)}
	}
	regs.WriteReg(R0, uint16(b))
	regs.UpdateFlags(R0)
	return TrapResult{}
}

// handleOUT writes the low byte of R0 as a single unbuffered character.
func (h *DefaultTrapHandler) handleOUT(regs *RegFile) TrapResult {
	if err := h.writeByte(byte(regs.ReadReg(R0))); err != nil {
		return TrapResult{Err: fmt.Errorf("trap OUT: %w", err)}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("trap OUT: %w", err)}
	}
	return TrapResult{}
}

// handlePUTS writes each cell starting at R0 as one character until a
// zero cell terminates the string.
func (h *DefaultTrapHandler) handlePUTS(regs *RegFile, mem *Memory) TrapResult {
	addr := regs.ReadReg(R0)
	for {
		cell := mem.Read(addr)
		if cell == 0 {
			break
		}
		if err := h.writeByte(byte(cell)); err != nil {
			return TrapResult{Err: fmt.Errorf("trap PUTS: %w", err)}
		}
		addr++
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("trap PUTS: %w", err)}
	}
	return TrapResult{}
}

// handleIN prompts, reads, echoes, and stores one byte in R0.
func (h *DefaultTrapHandler) handleIN(regs *RegFile) TrapResult {
	for _, c := range "Enter a character: " {
		if err := h.writeByte(byte(c)); err != nil {
			return TrapResult{Err: fmt.Errorf("trap IN: %w", err)}
		}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("trap IN: %w", err)}
	}

	b, err := h.console.ReadByteBlocking()
	if err != nil {
		return TrapResult{Err: fmt.Errorf("trap IN: %w", err)}
	}
	if err := h.writeByte(b); err != nil {
		return TrapResult{Err: fmt.Errorf("trap IN: %w", err)}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("trap IN: %w", err)}
	}

	regs.WriteReg(R0, uint16(b))
	regs.UpdateFlags(R0)
	return TrapResult{}
}

// handlePUTSP writes each cell starting at R0 as two packed characters
// (low byte, then high byte) until a zero cell terminates the string. A
// zero high byte (the padding of an odd-length string) is not written.
func (h *DefaultTrapHandler) handlePUTSP(regs *RegFile, mem *Memory) TrapResult {
	addr := regs.ReadReg(R0)
	for {
		cell := mem.Read(addr)
		if cell == 0 {
			break
		}
		low := byte(cell & 0xFF)
		if err := h.writeByte(low); err != nil {
			return TrapResult{Err: fmt.Errorf("trap PUTSP: %w", err)}
		}
		high := byte(cell >> 8)
		if high != 0 {
			if err := h.writeByte(high); err != nil {
				return TrapResult{Err: fmt.Errorf("trap PUTSP: %w", err)}
			}
		}
		addr++
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("trap PUTSP: %w", err)}
	}
	return TrapResult{}
}

// handleHALT signals the execution loop to terminate cleanly.
func (h *DefaultTrapHandler) handleHALT() TrapResult {
	return TrapResult{Halted: true}
}

// handleUnknown handles trap codes outside the defined set.
func (h *DefaultTrapHandler) handleUnknown(code uint16) TrapResult {
	return TrapResult{Err: fmt.Errorf("%w: 0x%02X", ErrUnknownTrap, code)}
}

func (h *DefaultTrapHandler) writeByte(b byte) error {
	return h.console.WriteByte(b)
}
