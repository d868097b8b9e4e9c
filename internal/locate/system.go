package locate

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

// System abstracts the OS operations needed by installation discovery.
// It is package-local so tests can fake PATH lookups and globbing without
// touching the real filesystem.
type System interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	Glob(pattern string) ([]string, error)
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// LookPath searches PATH for an executable named file.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Output runs name with args and returns its standard output.
func (RealSystem) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Glob returns the names of all files matching pattern.
func (RealSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// Stat returns the FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
