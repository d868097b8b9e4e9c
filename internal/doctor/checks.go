package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/insilichem/pychimera/internal/bootstrap"
	"github.com/insilichem/pychimera/internal/config"
	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/interp"
	"github.com/insilichem/pychimera/internal/locate"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/patch"
	"github.com/insilichem/pychimera/internal/platform"
)

var (
	loadConfigFunc = config.Load
	statFunc       = os.Stat
)

// CheckConfig loads the config file described by p. The returned config is
// nil when loading failed.
func CheckConfig(p config.Paths) ([]Result, *config.Config) {
	cfg, err := loadConfigFunc(p)
	if err != nil {
		recommend := messages.DoctorConfigLoadRecommend
		if errors.Is(err, config.ErrConfigValidation) {
			recommend = messages.DoctorConfigValidateRecommend
		}
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: recommend,
		}}, nil
	}

	msg := fmt.Sprintf(messages.DoctorConfigLoadedFmt, p.ConfigPath)
	if _, err := statFunc(p.ConfigPath); err != nil {
		msg = fmt.Sprintf(messages.DoctorConfigDefaultsFmt, p.ConfigPath)
	}
	return []Result{{Status: StatusOK, CheckName: messages.DoctorCheckNameConfig, Message: msg}}, cfg
}

// CheckSentinels warns when the environment already carries the patch or
// initialization sentinels, since either one short-circuits a normal run.
func CheckSentinels(env *envset.Env) []Result {
	var results []Result
	if root, ok := env.Lookup(patch.EnvRoot); ok {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameSentinels,
			Message:        fmt.Sprintf(messages.DoctorPatchedFmt, root),
			Recommendation: messages.DoctorPatchedRecommend,
		})
	}
	if bootstrap.Enabled(env) {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameSentinels,
			Message:        fmt.Sprintf(messages.DoctorEnabledSetFmt, bootstrap.EnvEnabled),
			Recommendation: fmt.Sprintf(messages.DoctorEnabledSetRecommendFmt, bootstrap.EnvEnabled),
		})
	}
	if len(results) == 0 {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameSentinels,
			Message:   messages.DoctorSentinelsClear,
		})
	}
	return results
}

// CheckInstall runs a full installation search and returns one result per
// candidate, along with the candidates themselves.
func CheckInstall(ctx context.Context, r *locate.Resolver) ([]Result, []string) {
	candidates, err := r.Candidates(ctx, true)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInstall,
			Message:        fmt.Sprintf(messages.DoctorInstallFailFmt, err),
			Recommendation: messages.LocateInstructions,
		}}, nil
	}
	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameInstall,
			Message:   fmt.Sprintf(messages.DoctorInstallFoundFmt, candidate),
		})
	}
	return results, candidates
}

// CheckLayout verifies the directories the environment patch points into.
func CheckLayout(root string) []Result {
	inst := patch.Install{Root: root}
	dirs := []string{inst.BinDir(), inst.LibDir(), inst.ShareDir(), filepath.Join(inst.LibDir(), "tcl8.6")}

	var results []Result
	for _, dir := range dirs {
		info, err := statFunc(dir)
		switch {
		case err != nil:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLayout,
				Message:        fmt.Sprintf(messages.DoctorMissingDirFmt, dir),
				Recommendation: messages.DoctorLayoutRecommend,
			})
		case !info.IsDir():
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLayout,
				Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, dir),
				Recommendation: messages.DoctorLayoutRecommend,
			})
		default:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameLayout,
				Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, dir),
			})
		}
	}
	return results
}

// CheckInitModule verifies that chimeraInit ships in the installation's
// share directory.
func CheckInitModule(root string, plat platform.Platform) Result {
	share := patch.Install{Root: root}.ShareDir()
	env := envset.FromEnviron([]string{"PYTHONPATH=" + share})
	dir, err := bootstrap.FindInitModule(env, plat)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInit,
			Message:        fmt.Sprintf(messages.DoctorInitMissingFmt, share),
			Recommendation: messages.DoctorInitRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameInit,
		Message:   fmt.Sprintf(messages.DoctorInitFoundFmt, dir),
	}
}

// CheckInterpreter resolves the interpreter and queries its sys.path.
func CheckInterpreter(ctx context.Context, f interp.Finder, req interp.Request) Result {
	python, err := f.Find(req)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInterpreter,
			Message:        fmt.Sprintf(messages.DoctorInterpFailFmt, err),
			Recommendation: messages.DoctorInterpRecommend,
		}
	}
	sysPath, err := interp.SysPath(ctx, f.Sys, python)
	if err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameInterpreter,
			Message:        fmt.Sprintf(messages.DoctorSysPathFailFmt, python, err),
			Recommendation: messages.DoctorSysPathRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameInterpreter,
		Message:   fmt.Sprintf(messages.DoctorInterpFoundFmt, python, len(sysPath)),
	}
}
