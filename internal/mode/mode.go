// Package mode decides what the interpreter runs once Chimera is initialized.
package mode

import (
	"fmt"
	"strings"

	"github.com/insilichem/pychimera/internal/messages"
)

// Mode is one mutually exclusive way of running the interpreter.
type Mode int

// Modes, in the order the CLI documents them.
const (
	Interactive Mode = iota
	Stdin
	Script
	Module
	String
	IPython
	Notebook
	GUI
)

// Keywords accepted as the positional command instead of a script path.
const (
	KeywordIPython  = "ipython"
	KeywordNotebook = "notebook"
)

var names = map[Mode]string{
	Interactive: "interactive",
	Stdin:       "stdin",
	Script:      "script",
	Module:      "module",
	String:      "string",
	IPython:     "ipython",
	Notebook:    "notebook",
	GUI:         "gui",
}

// String returns the name used by the bootstrap program.
func (m Mode) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Options are the parsed CLI selections.
type Options struct {
	// Interactive is -i.
	Interactive bool
	// GUI is --gui.
	GUI bool
	// Module is -m; ModuleSet reports whether the flag was given.
	Module    string
	ModuleSet bool
	// Code is -c; CodeSet reports whether the flag was given.
	Code    string
	CodeSet bool
	// Command is the first positional argument.
	Command string
	// Args are the arguments after the target.
	Args []string
}

// Plan is the resolved run.
type Plan struct {
	Mode Mode
	// Target is the module name, source string, or script path.
	Target string
	// Args are forwarded to the target as sys.argv[1:].
	Args []string
	// Inspect keeps the interpreter interactive after the target finishes.
	Inspect bool
}

// Resolve validates opts and picks the mode. Without an explicit target the
// run is interactive when attached to a terminal and reads a program from
// standard input otherwise.
func Resolve(opts Options, isTerminal bool) (Plan, error) {
	var given []string
	if opts.ModuleSet {
		given = append(given, "-m")
	}
	if opts.CodeSet {
		given = append(given, "-c")
	}
	if opts.Command != "" {
		given = append(given, fmt.Sprintf("%q", opts.Command))
	}
	if len(given) > 1 {
		return Plan{}, fmt.Errorf(messages.ModeConflictFmt, strings.Join(given, ", "))
	}

	args := append([]string(nil), opts.Args...)
	if opts.GUI {
		if len(given) > 0 {
			return Plan{}, fmt.Errorf(messages.ModeGUIWithTarget)
		}
		return Plan{Mode: GUI, Args: args}, nil
	}

	switch {
	case opts.ModuleSet:
		return Plan{Mode: Module, Target: opts.Module, Args: args, Inspect: opts.Interactive}, nil
	case opts.CodeSet:
		return Plan{Mode: String, Target: opts.Code, Args: args, Inspect: opts.Interactive}, nil
	case opts.Command == KeywordIPython:
		return Plan{Mode: IPython, Args: args}, nil
	case opts.Command == KeywordNotebook:
		return Plan{Mode: Notebook, Args: args}, nil
	case opts.Command != "":
		return Plan{Mode: Script, Target: opts.Command, Args: args, Inspect: opts.Interactive}, nil
	case opts.Interactive || isTerminal:
		return Plan{Mode: Interactive, Args: args, Inspect: true}, nil
	default:
		return Plan{Mode: Stdin, Args: args}, nil
	}
}

// InitializesChimera reports whether the interpreter should initialize
// Chimera before running. Notebook kernels initialize from their first cell.
func (p Plan) InitializesChimera() bool {
	return p.Mode != Notebook
}

// Headless reports whether Chimera runs without its graphical interface.
func (p Plan) Headless() bool {
	return p.Mode != GUI
}
