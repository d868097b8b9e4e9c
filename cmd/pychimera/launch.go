package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/insilichem/pychimera/internal/bootstrap"
	"github.com/insilichem/pychimera/internal/config"
	"github.com/insilichem/pychimera/internal/envdiff"
	"github.com/insilichem/pychimera/internal/envfile"
	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/interp"
	"github.com/insilichem/pychimera/internal/locate"
	"github.com/insilichem/pychimera/internal/logging"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/mode"
	"github.com/insilichem/pychimera/internal/patch"
	"github.com/insilichem/pychimera/internal/picker"
	"github.com/insilichem/pychimera/internal/platform"
	"github.com/insilichem/pychimera/internal/relaunch"
	"github.com/insilichem/pychimera/internal/terminal"
)

// chooser picks one installation among several.
type chooser interface {
	Pick(candidates []string, preferred string) (string, error)
}

// OS seams, replaced in tests.
var (
	locateSystem   locate.System   = locate.RealSystem{}
	interpSystem   interp.System   = interp.RealSystem{}
	relaunchSystem relaunch.System = relaunch.RealSystem{}
)

var (
	stdinIsTerminal = terminal.StdinIsTerminal
	stdoutColor     = colorWriter
	newChooser      = func() chooser { return picker.New() }
	goos            = runtime.GOOS
)

type launcher struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
	flags  rootFlags

	logger *zap.Logger
	env    *envset.Env
	plat   platform.Platform
	cfg    *config.Config
	paths  config.Paths
}

// run executes the launch sequence. Before the relaunch it resolves the
// installation and patches the environment; after it, it starts the
// interpreter with Chimera initialized.
func (l *launcher) run(ctx context.Context, opts mode.Options) error {
	if exclusive(l.flags.path, l.flags.doctor, l.flags.printEnv || l.flags.envDiff) > 1 {
		return fmt.Errorf(messages.ModePathConflict)
	}
	if err := l.setupEnv(); err != nil {
		return err
	}
	if l.flags.doctor {
		return l.doctor(ctx)
	}
	cfg, err := config.Load(l.paths)
	if err != nil {
		return err
	}
	if err := l.useConfig(cfg); err != nil {
		return err
	}

	if l.flags.path {
		resolver, err := l.resolver()
		if err != nil {
			return err
		}
		candidates, err := resolver.Candidates(ctx, false)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(l.stdout, candidates[0])
		return err
	}

	plan, err := mode.Resolve(opts, stdinIsTerminal())
	if err != nil {
		return err
	}

	if l.flags.printEnv || l.flags.envDiff {
		return l.report(ctx, plan)
	}

	err = relaunch.MaybeRelaunch(relaunchSystem, l.argv, func() (*envset.Env, error) {
		return l.patched(ctx, plan)
	}, l.exit, l.logger)
	if err != nil {
		return err
	}
	return l.launch(plan)
}

// setupEnv builds the logger, environment and platform, and locates the
// config file.
func (l *launcher) setupEnv() error {
	l.logger = logging.New(l.stderr, l.flags.verbose)
	l.env = envset.FromEnviron(relaunchSystem.Environ())

	plat, err := platform.ForOS(goos, l.env)
	if err != nil {
		return err
	}
	l.plat = plat

	paths, err := config.ResolvePaths(l.flags.config, l.env)
	if err != nil {
		return err
	}
	l.paths = paths
	return nil
}

// useConfig adopts cfg and applies its env file.
func (l *launcher) useConfig(cfg *config.Config) error {
	l.cfg = cfg
	l.logger.Debug(messages.LogConfigLoaded, zap.String("path", l.paths.ConfigPath))

	// The env file only shapes the environment before the patch; the
	// relaunched process inherits the result.
	if relaunch.Patched(relaunchSystem) {
		return nil
	}
	extra, err := cfg.LoadEnvFile(l.paths)
	if err != nil {
		return err
	}
	l.env.FillMissing(extra.Set)
	for _, key := range extra.Unset {
		l.env.Unset(key)
	}
	return nil
}

func (l *launcher) resolver() (*locate.Resolver, error) {
	dir, err := l.cfg.ResolveDir(l.paths)
	if err != nil {
		return nil, err
	}
	locations, err := l.cfg.ResolveLocations(l.paths)
	if err != nil {
		return nil, err
	}
	return &locate.Resolver{
		Sys:       locateSystem,
		Platform:  l.plat,
		Override:  locate.Override(l.env, dir),
		Locations: locations,
		Logger:    l.logger,
	}, nil
}

// selectRoot resolves the installation root for plan.
func (l *launcher) selectRoot(ctx context.Context, plan mode.Plan) (string, error) {
	resolver, err := l.resolver()
	if err != nil {
		return "", err
	}
	candidates, err := resolver.Candidates(ctx, plan.Headless())
	if err != nil {
		return "", err
	}
	root := locate.SelectRoot(candidates, plan.Headless())
	if l.flags.choose {
		root, err = newChooser().Pick(candidates, root)
		if err != nil {
			return "", err
		}
	}
	l.logger.Debug(messages.LogSelectedRoot, zap.String("root", root))
	return root, nil
}

func (l *launcher) findPython(root string) (string, error) {
	finder := interp.Finder{Sys: interpSystem, Platform: l.plat}
	return finder.Find(l.pythonRequest(root))
}

func (l *launcher) pythonRequest(root string) interp.Request {
	return interp.Request{
		Flag:       l.flags.python,
		Env:        l.env,
		Configured: l.cfg.Interpreter(),
		Root:       root,
	}
}

// patched returns a copy of the environment with the Chimera patch applied.
func (l *launcher) patched(ctx context.Context, plan mode.Plan) (*envset.Env, error) {
	root, err := l.selectRoot(ctx, plan)
	if err != nil {
		return nil, err
	}
	python, err := l.findPython(root)
	if err != nil {
		return nil, err
	}
	sysPath, err := interp.SysPath(ctx, interpSystem, python)
	if err != nil {
		l.logger.Warn(messages.LogSysPathQueryFailed, zap.Error(err))
		sysPath = nil
	}

	env := l.env.Clone()
	err = patch.Apply(env, root, l.plat, patch.Options{
		NoGUI:   plan.Headless(),
		SysPath: sysPath,
	})
	if err != nil {
		return nil, err
	}
	return env, nil
}

// report prints the patch instead of applying it.
func (l *launcher) report(ctx context.Context, plan mode.Plan) error {
	if relaunch.Patched(relaunchSystem) {
		_, err := fmt.Fprintln(l.stderr, messages.EnvDiffNoChanges)
		return err
	}
	after, err := l.patched(ctx, plan)
	if err != nil {
		return err
	}

	if l.flags.envDiff {
		diff := envdiff.Render(l.env, after)
		if stdoutColor(l.stdout) {
			diff = envdiff.Colorize(diff)
		}
		_, err = io.WriteString(l.stdout, diff)
		return err
	}
	set, unset := l.env.Delta(after)
	_, err = io.WriteString(l.stdout, envfile.Format(envfile.File{Set: set, Unset: unset}))
	return err
}

// launch checks the initializer and hands execution to the interpreter.
func (l *launcher) launch(plan mode.Plan) error {
	root := l.env.Get(relaunch.EnvPatched)
	if plan.InitializesChimera() {
		if err := (bootstrap.Initializer{Platform: l.plat}).Check(l.env); err != nil {
			return err
		}
	} else {
		l.logger.Debug(messages.LogInitSkipped, zap.String("mode", plan.Mode.String()))
	}

	python, err := l.findPython(root)
	if err != nil {
		return err
	}
	program := bootstrap.Program{
		Plan:         plan,
		Verbose:      l.flags.verbose,
		NotebookName: l.cfg.Notebook.UntitledName,
	}
	source, err := bootstrap.Render(program, l.env)
	if err != nil {
		return err
	}
	l.logger.Debug(messages.LogLaunching, zap.String("python", python), zap.String("mode", plan.Mode.String()))
	return relaunch.Exec(relaunchSystem, python, bootstrap.Command(python, source), bootstrap.Environ(program, l.env), l.exit)
}

// colorWriter reports whether w is a terminal that accepts color.
func colorWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && !color.NoColor && terminal.IsTerminal(f)
}

// exclusive counts the set flags.
func exclusive(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
