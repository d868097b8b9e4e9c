package messages

// CLI messages for the pychimera front end.
const (
	// RootUse is the CLI command name.
	RootUse = "pychimera [flags] [ipython | notebook | script.py] [args...]"
	// RootShort is the short description for the root command.
	RootShort = "pychimera - UCSF Chimera for standard Python"
	RootLong  = "Locate UCSF Chimera, patch the environment so its Python modules and\n" +
		"libraries load, then run a script, module, inline string, IPython shell,\n" +
		"Jupyter notebook or interactive interpreter with Chimera initialized."
	RootVersionFlag = "Print version and exit"

	FlagInteractive = "Enable interactive mode"
	FlagVerbose     = "Print debug information"
	FlagGUI         = "Launch Chimera graphical interface"
	FlagPath        = "Return first found Chimera path"
	FlagModule      = "Run Python module as a script"
	FlagString      = "Program passed in as string"
	FlagPython      = "Python interpreter to run (overrides PYCHIMERA_PYTHON)"
	FlagConfig      = "Path to the pychimera config file"
	FlagChoose      = "Choose interactively between several Chimera installations"
	FlagPrintEnv    = "Print the environment changes in .env format and exit"
	FlagEnvDiff     = "Print a diff of the environment before and after patching and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Name}} v{{.Version}}\n"

	ErrorPrefix = "ERROR: "

	ModeConflictFmt      = "only one of -m, -c or a command may be given (got %s)"
	ModeGUIWithTarget    = "--gui cannot be combined with ipython, notebook, -m, -c or a script"
	ModePathConflict     = "--path and --doctor cannot be combined with each other or with --print-env and --env-diff"
	EnvDiffNoChanges     = "environment already patched; nothing to change"
	PickerTitle          = "Several UCSF Chimera installations were found. Which one should be used?"
	PickerNotInteractive = "choosing an installation requires an interactive terminal"
	PickerCancelled      = "installation choice cancelled"
)

// Installation discovery messages.
const (
	// LocateInstructions tells the user how to make Chimera discoverable.
	LocateInstructions = "Please, create an environment variable CHIMERADIR set " +
		"to your Chimera installation path, or softlink the " +
		"Chimera binary to somewhere in your $PATH."
	LocateNotFound            = "Could not find UCSF Chimera."
	LocateNotFoundFmt         = "%w\n%s"
	LocateUnsupportedPlatform = "Platform `%s` not supported.\n%s"
	LocateRootQueryFailedFmt  = "query %s --root: %w"
	LocateGlobFailedFmt       = "search %s: %w"
	LocateSystemRequired      = "locate system is required"
)

// Environment patch and relaunch messages.
const (
	// RelaunchErrRelaunched indicates execution continued in another process image.
	RelaunchErrRelaunched        = "execution handed off to another process"
	RelaunchSystemRequired       = "relaunch system is required"
	RelaunchMissingArgv0         = "missing argv[0]"
	RelaunchExitHandlerRequired  = "exit handler is required"
	RelaunchResolveExecutableFmt = "resolve executable: %w"
	RelaunchExecFailedFmt        = "relaunch %s: %w"
	RelaunchChildFailedFmt       = "run %s: %w"
	RelaunchPrepareFailedFmt     = "prepare environment: %w"
	PatchEmptyRoot               = "installation root is required"
)

// Interpreter and initializer messages.
const (
	InterpNotFoundFmt   = "no Python interpreter found (tried %s); set PYCHIMERA_PYTHON or pass --python"
	InterpMissingFmt    = "python interpreter %s: %w"
	InterpSysPathFmt    = "query sys.path from %s: %w"
	InitNotLoadable     = "Chimera could not be loaded!"
	InitNotLoadableFmt  = "%w\nchimeraInit was not found in PYTHONPATH:\n  %s"
	InitRenderFailedFmt = "render bootstrap: %w"
)

// Config messages.
const (
	ConfigReadFailedFmt     = "read config %s: %w"
	ConfigInvalidFmt        = "invalid config %s: %w"
	ConfigResolveDirFmt     = "resolve config dir: %w"
	ConfigEnvFileFailedFmt  = "read env file %s: %w"
	ConfigEnvFileInvalidFmt = "invalid env file %s: %w"
	ConfigInterpreterEmpty  = "python.interpreter must not be blank when set"
	ConfigLocationEmptyFmt  = "chimera.locations[%d] must not be blank"
)

// Debug log messages.
const (
	LogCandidates         = "chimera candidates"
	LogOverride           = "using installation override"
	LogRootQueryFailed    = "chimera --root failed; searching conventional locations"
	LogSelectedRoot       = "selected installation root"
	LogPatchSkipped       = "environment already patched"
	LogRelaunching        = "relaunching with patched environment"
	LogInitSkipped        = "chimera already initialized"
	LogLaunching          = "launching interpreter"
	LogConfigLoaded       = "config loaded"
	LogSysPathQueryFailed = "interpreter sys.path query failed; continuing without it"
)

// Env file messages.
const (
	// EnvfileLineErrorFmt formats env file line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE or unset KEY"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"
	EnvfileInvalidKeyFmt           = "invalid variable name %q"
)
