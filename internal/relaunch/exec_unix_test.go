//go:build !windows

package relaunch

import (
	"errors"
	"testing"
)

func TestExecBinary_DelegatesToSyscallExec(t *testing.T) {
	original := syscallExec
	t.Cleanup(func() { syscallExec = original })

	wantErr := errors.New("exec failed")
	called := false
	syscallExec = func(path string, args []string, env []string) error {
		called = true
		if path != "/usr/bin/python2.7" {
			t.Fatalf("expected path /usr/bin/python2.7, got %q", path)
		}
		if len(args) != 2 || args[0] != "python2.7" || args[1] != "-i" {
			t.Fatalf("unexpected args: %#v", args)
		}
		if len(env) != 1 || env[0] != "CHIMERA=/opt" {
			t.Fatalf("unexpected env: %#v", env)
		}
		return wantErr
	}

	err := RealSystem{}.ExecBinary("/usr/bin/python2.7", []string{"python2.7", "-i"}, []string{"CHIMERA=/opt"}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatal("expected syscallExec to be called")
	}
}
