// Package interp finds the Python interpreter that hosts Chimera and queries it.
package interp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/platform"
)

// EnvPython names the interpreter override.
const EnvPython = "PYCHIMERA_PYTHON"

// fallbackNames are looked up on PATH, most specific first. Chimera embeds Python 2.7.
var fallbackNames = []string{"python2.7", "python2", "python"}

// sysPathScript prints the interpreter's non-empty sys.path entries, one per line.
const sysPathScript = "import sys\nfor p in sys.path:\n    if p:\n        print(p)\n"

// System abstracts the OS operations needed to find and query an interpreter.
type System interface {
	LookPath(file string) (string, error)
	Stat(name string) (os.FileInfo, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// LookPath searches PATH for an executable named file.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Stat returns the FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Output runs name with args and returns its standard output.
func (RealSystem) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Finder resolves the interpreter for one platform.
type Finder struct {
	Sys      System
	Platform platform.Platform
}

// Request lists the interpreter sources in precedence order.
type Request struct {
	// Flag is the --python value.
	Flag string
	// Env is consulted for PYCHIMERA_PYTHON.
	Env *envset.Env
	// Configured is the config file's python.interpreter.
	Configured string
	// Root is the installation root, used for bundled interpreters.
	Root string
}

// Find returns the absolute interpreter path. Explicit sources (flag,
// environment, config) fail when they do not resolve; otherwise the
// platform's bundled interpreter is preferred over PATH lookups.
func (f Finder) Find(req Request) (string, error) {
	explicit := []string{strings.TrimSpace(req.Flag)}
	if req.Env != nil {
		explicit = append(explicit, strings.TrimSpace(req.Env.Get(EnvPython)))
	}
	explicit = append(explicit, strings.TrimSpace(req.Configured))
	for _, candidate := range explicit {
		if candidate == "" {
			continue
		}
		return f.resolve(candidate)
	}

	if bundled := f.Platform.BundledInterpreter(req.Root); bundled != "" && req.Root != "" {
		if _, err := f.Sys.Stat(bundled); err == nil {
			return bundled, nil
		}
	}

	for _, name := range fallbackNames {
		if path, err := f.Sys.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf(messages.InterpNotFoundFmt, strings.Join(fallbackNames, ", "))
}

// resolve turns a name or path into an existing executable path.
func (f Finder) resolve(candidate string) (string, error) {
	if strings.ContainsAny(candidate, `/\`) {
		if _, err := f.Sys.Stat(candidate); err != nil {
			return "", fmt.Errorf(messages.InterpMissingFmt, candidate, err)
		}
		return candidate, nil
	}
	path, err := f.Sys.LookPath(candidate)
	if err != nil {
		return "", fmt.Errorf(messages.InterpMissingFmt, candidate, err)
	}
	return path, nil
}

// SysPath returns the non-empty sys.path entries of python.
func SysPath(ctx context.Context, sys System, python string) ([]string, error) {
	out, err := sys.Output(ctx, python, "-c", sysPathScript)
	if err != nil {
		return nil, fmt.Errorf(messages.InterpSysPathFmt, python, err)
	}
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		paths = append(paths, filepath.Clean(line))
	}
	return paths, nil
}
