package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/relaunch"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and output writers.
// args[0] is the program name; exit is handed to process replacement.
func execute(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) error {
	cmd := newRootCmd(args, exit)
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI, exiting on fatal errors.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr, exit)
	if err == nil || errors.Is(err, relaunch.ErrRelaunched) {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		printError(stderr, err)
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		exit(code)
		return
	}
	printError(stderr, err)
	exit(1)
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprint(w, messages.ErrorPrefix)
	_, _ = fmt.Fprintln(w, err)
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
