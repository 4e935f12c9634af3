// Package main provides the entry point for lc3vm, a command-line LC-3
// virtual machine with execute and disassemble subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iammadab/lc3/disasm"
	"github.com/iammadab/lc3/emu"
	"github.com/iammadab/lc3/loader"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lc3vm",
		Short: "lc3vm runs and inspects LC-3 object files",
	}

	rootCmd.AddCommand(newExecuteCmd(), newDisassembleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <path>",
		Short: "Load an object file and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(args[0])
		},
	}
}

func newDisassembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disassemble <path>",
		Short: "Load an object file and print the decoded form of each word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisassemble(args[0])
		},
	}
}

func runExecute(path string) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	stdinFd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(stdinFd)
	if err == nil {
		defer func() { _ = term.Restore(stdinFd, oldState) }()
	}

	console := emu.NewByteConsole(os.Stdin, os.Stdout)
	machine := emu.NewEmulator(emu.WithConsole(console))
	machine.LoadProgram(img.Origin, img.Words)

	if runErr := machine.Run(); runErr != nil {
		return fmt.Errorf("execute: %w", runErr)
	}
	return nil
}

func runDisassemble(path string) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	for i, word := range img.Words {
		fmt.Printf("0x%04X: %s\n", img.Origin+uint16(i), disasm.Disassemble(word))
	}
	return nil
}

func loadImage(path string) (*loader.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := loader.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}
