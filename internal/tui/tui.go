// SPDX-License-Identifier: EPL-2.0

// Package tui provides the terminal prompts beamskin asks before destructive
// changes. Prompts run as a bubbletea program on a terminal and fall back to
// a plain line prompt (accessible mode) when input is not a terminal.
package tui

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user cancels a prompt (esc, ctrl+c, or
// end of input).
var ErrCancelled = errors.New("prompt cancelled")

// Config holds common configuration for TUI components.
type Config struct {
	// Accessible replaces the interactive prompt with a line prompt.
	Accessible bool
	// Input is where answers are read from.
	Input io.Reader
	// Output specifies where to write the component output.
	Output io.Writer
}

// DefaultConfig returns the default configuration for TUI components.
// It enables accessible mode when stdin is not a terminal or the ACCESSIBLE
// environment variable is set. Prompts go to stderr so they are not
// captured along with command output.
func DefaultConfig() Config {
	return Config{
		Accessible: !isInputTerminal() || os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
