//go:build windows

package relaunch

import (
	"errors"
	"os"
	"os/exec"
)

// execBinary runs the target as a child attached to the current console and
// exits with its status. Windows has no exec(2).
func execBinary(path string, args []string, env []string, exit func(int)) error {
	cmd := exec.Command(path, args[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exit(exitErr.ExitCode())
			return nil
		}
		return err
	}
	exit(0)
	return nil
}
