package relaunch

import "os"

// System abstracts the OS operations needed to hand execution to a new
// process image. Tests substitute their own implementation.
type System interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Environ() []string
	Executable() (string, error)
	ExecBinary(path string, args []string, env []string, exit func(int)) error
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of key and whether it is present.
func (RealSystem) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Executable returns the path of the running binary.
func (RealSystem) Executable() (string, error) {
	return os.Executable()
}

// ExecBinary replaces the current process with the provided binary.
func (RealSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	return execBinary(path, args, env, exit)
}
