// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fder is implemented by *os.File.
type Fder interface {
	Fd() uintptr
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f Fder) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether stdin and stdout are both interactive terminals.
// Prompts require both.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// StdinIsTerminal reports whether the interpreter would read commands from a
// terminal rather than a pipe or file.
func StdinIsTerminal() bool {
	return IsTerminal(os.Stdin)
}
