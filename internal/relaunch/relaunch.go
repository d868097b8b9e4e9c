// Package relaunch hands execution to a new process image: this binary again
// once the environment is patched, then the Python interpreter.
package relaunch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/patch"
)

// EnvPatched marks a process whose environment already carries the Chimera
// patch. It holds the installation root.
const EnvPatched = patch.EnvRoot

// ErrRelaunched signals that execution continued in another process image.
// Callers return it up the stack untouched and stop.
var ErrRelaunched = errors.New(messages.RelaunchErrRelaunched)

// Prepare builds the patched environment for the relaunch.
type Prepare func() (*envset.Env, error)

// Patched reports whether the current process already runs with the patch.
// The sentinel counts when present, even if empty.
func Patched(sys System) bool {
	if sys == nil {
		return false
	}
	_, ok := sys.LookupEnv(EnvPatched)
	return ok
}

// MaybeRelaunch re-executes the running binary with the environment returned
// by prepare, unless the patch is already in place. Environment variables
// like LD_LIBRARY_PATH are only honored at process start, so the patch cannot
// take effect in place.
//
// It returns nil when no relaunch is needed and ErrRelaunched when execution
// was handed off. prepare is not called when the patch is already in place.
func MaybeRelaunch(sys System, args []string, prepare Prepare, exit func(int), logger *zap.Logger) error {
	if sys == nil {
		return fmt.Errorf(messages.RelaunchSystemRequired)
	}
	if len(args) == 0 {
		return fmt.Errorf(messages.RelaunchMissingArgv0)
	}
	if exit == nil {
		return fmt.Errorf(messages.RelaunchExitHandlerRequired)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if Patched(sys) {
		logger.Debug(messages.LogPatchSkipped, zap.String(EnvPatched, sys.Getenv(EnvPatched)))
		return nil
	}

	env, err := prepare()
	if err != nil {
		return fmt.Errorf(messages.RelaunchPrepareFailedFmt, err)
	}
	if !env.Has(EnvPatched) {
		return fmt.Errorf(messages.RelaunchPrepareFailedFmt, errors.New(messages.PatchEmptyRoot))
	}

	self, err := sys.Executable()
	if err != nil {
		return fmt.Errorf(messages.RelaunchResolveExecutableFmt, err)
	}
	execArgs := append([]string(nil), args...)
	logger.Debug(messages.LogRelaunching, zap.String("executable", self), zap.Strings("args", execArgs[1:]))
	if err := sys.ExecBinary(self, execArgs, env.Environ(), exit); err != nil {
		return fmt.Errorf(messages.RelaunchExecFailedFmt, self, err)
	}
	return ErrRelaunched
}

// Exec hands execution to path with argv args and the given environment.
// It returns ErrRelaunched once the handoff happened.
func Exec(sys System, path string, args []string, env *envset.Env, exit func(int)) error {
	if sys == nil {
		return fmt.Errorf(messages.RelaunchSystemRequired)
	}
	if len(args) == 0 {
		return fmt.Errorf(messages.RelaunchMissingArgv0)
	}
	if exit == nil {
		return fmt.Errorf(messages.RelaunchExitHandlerRequired)
	}
	if err := sys.ExecBinary(path, args, env.Environ(), exit); err != nil {
		return fmt.Errorf(messages.RelaunchChildFailedFmt, path, err)
	}
	return ErrRelaunched
}
