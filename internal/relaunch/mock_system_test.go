package relaunch

import (
	"errors"
	"fmt"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Getenv, LookupEnv and Environ fall back to RealSystem so tests can use t.Setenv.
// Executable and ExecBinary fail fast.
type testSystem struct {
	RealSystem

	GetenvFunc     func(key string) string
	LookupEnvFunc  func(key string) (string, bool)
	EnvironFunc    func() []string
	ExecutableFunc func() (string, error)
	ExecBinaryFunc func(path string, args []string, env []string, exit func(int)) error
}

func (s *testSystem) Getenv(key string) string {
	if s.GetenvFunc != nil {
		return s.GetenvFunc(key)
	}
	return s.RealSystem.Getenv(key)
}

func (s *testSystem) LookupEnv(key string) (string, bool) {
	if s.LookupEnvFunc != nil {
		return s.LookupEnvFunc(key)
	}
	return s.RealSystem.LookupEnv(key)
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return s.RealSystem.Environ()
}

func (s *testSystem) Executable() (string, error) {
	if s.ExecutableFunc != nil {
		return s.ExecutableFunc()
	}
	return "", fmt.Errorf("%w: Executable", errNotMocked)
}

func (s *testSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	if s.ExecBinaryFunc != nil {
		return s.ExecBinaryFunc(path, args, env, exit)
	}
	return fmt.Errorf("%w: ExecBinary", errNotMocked)
}
