package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - LookPath, Output: Return errNotMocked. A real PATH lookup could find an
//     actual Chimera installation on the test machine.
//   - Glob, Stat: Fall back to RealSystem so tests can use t.TempDir() fixtures.
type testSystem struct {
	RealSystem

	LookPathFunc func(file string) (string, error)
	OutputFunc   func(ctx context.Context, name string, args ...string) ([]byte, error)
	GlobFunc     func(pattern string) ([]string, error)
	StatFunc     func(name string) (os.FileInfo, error)
}

func (s *testSystem) LookPath(file string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(file)
	}
	return "", fmt.Errorf("%w: LookPath", errNotMocked)
}

func (s *testSystem) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if s.OutputFunc != nil {
		return s.OutputFunc(ctx, name, args...)
	}
	return nil, fmt.Errorf("%w: Output", errNotMocked)
}

func (s *testSystem) Glob(pattern string) ([]string, error) {
	if s.GlobFunc != nil {
		return s.GlobFunc(pattern)
	}
	return s.RealSystem.Glob(pattern)
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}
