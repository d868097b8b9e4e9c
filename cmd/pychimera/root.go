package main

import (
	"github.com/spf13/cobra"

	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/mode"
)

const (
	flagModule = "module"
	flagCode   = "code"
)

type rootFlags struct {
	interactive bool
	verbose     bool
	gui         bool
	path        bool
	doctor      bool
	module      string
	code        string
	python      string
	config      string
	choose      bool
	printEnv    bool
	envDiff     bool
}

// newRootCmd builds the pychimera command. argv is the full process argument
// list, replayed verbatim when the process relaunches itself.
func newRootCmd(argv []string, exit func(int)) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := mode.Options{
				Interactive: f.interactive,
				GUI:         f.gui,
				Module:      f.module,
				ModuleSet:   cmd.Flags().Changed(flagModule),
				Code:        f.code,
				CodeSet:     cmd.Flags().Changed(flagCode),
			}
			switch {
			case opts.ModuleSet || opts.CodeSet:
				// As with python -m and -c, positionals belong to the target.
				opts.Args = args
			case len(args) > 0:
				opts.Command = args[0]
				opts.Args = args[1:]
			}
			l := &launcher{
				argv:   argv,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
				exit:   exit,
				flags:  f,
			}
			return l.run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	// Everything after the target belongs to the target.
	flags.SetInterspersed(false)
	flags.BoolVarP(&f.interactive, "interactive", "i", false, messages.FlagInteractive)
	flags.BoolVarP(&f.verbose, "verbose", "v", false, messages.FlagVerbose)
	flags.BoolVar(&f.gui, "gui", false, messages.FlagGUI)
	flags.BoolVar(&f.path, "path", false, messages.FlagPath)
	flags.BoolVar(&f.doctor, "doctor", false, messages.FlagDoctor)
	flags.StringVarP(&f.module, flagModule, "m", "", messages.FlagModule)
	flags.StringVarP(&f.code, flagCode, "c", "", messages.FlagString)
	flags.StringVar(&f.python, "python", "", messages.FlagPython)
	flags.StringVar(&f.config, "config", "", messages.FlagConfig)
	flags.BoolVar(&f.choose, "choose", false, messages.FlagChoose)
	flags.BoolVar(&f.printEnv, "print-env", false, messages.FlagPrintEnv)
	flags.BoolVar(&f.envDiff, "env-diff", false, messages.FlagEnvDiff)
	flags.BoolP("version", "V", false, messages.RootVersionFlag)
	return cmd
}
