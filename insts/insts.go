// Package insts provides LC-3 instruction definitions and decoding.
//
// This package implements decoding of 16-bit LC-3 machine words into a
// structured instruction representation. The instruction set has 16
// opcodes, two of which (RTI, RES) are unused by the core and are left
// for the caller to treat as fatal.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0b0001_010_011_000_100) // ADD R2, R3, R4
//	fmt.Printf("Op: %v, DR: %d, SR1: %d\n", inst.Op, inst.DR, inst.SR1)
package insts
