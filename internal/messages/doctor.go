package messages

// Doctor messages for the --doctor report.
const (
	FlagDoctor = "Check the Chimera installation and interpreter, then exit"

	// DoctorHeaderFmt introduces the report with the platform name.
	DoctorHeaderFmt = "Checking pychimera setup on %s...\n"

	DoctorCheckNameConfig      = "Config"
	DoctorCheckNameSentinels   = "Sentinels"
	DoctorCheckNameInstall     = "Install"
	DoctorCheckNameLayout      = "Layout"
	DoctorCheckNameInit        = "ChimeraInit"
	DoctorCheckNameInterpreter = "Interpreter"

	DoctorConfigLoadedFmt         = "Configuration loaded from %s"
	DoctorConfigDefaultsFmt       = "No config file at %s; using defaults"
	DoctorConfigLoadFailedFmt     = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend     = "Check that the config file is readable TOML."
	DoctorConfigValidateRecommend = "Remove unknown keys and blank values from the config file."
	DoctorEnvFileFailedFmt        = "Failed to apply env file: %v"
	DoctorEnvFileRecommend        = "Fix env.file or remove it from the config file."

	DoctorSentinelsClear         = "No pychimera sentinel variables set"
	DoctorPatchedFmt             = "Environment already patched for %s"
	DoctorPatchedRecommend       = "Run the check from a shell without CHIMERA set to test discovery."
	DoctorEnabledSetFmt          = "%s is set; chimeraInit will not be called"
	DoctorEnabledSetRecommendFmt = "Unset %s unless Chimera is already initialized in this process."

	DoctorInstallFoundFmt = "Found installation: %s"
	DoctorInstallFailFmt  = "Installation lookup failed: %v"

	DoctorDirExistsFmt     = "Directory exists: %s"
	DoctorMissingDirFmt    = "Missing directory: %s"
	DoctorPathNotDirFmt    = "%s exists but is not a directory"
	DoctorLayoutRecommend  = "Point CHIMERADIR at the Chimera root that holds its bin and lib directories."
	DoctorInitFoundFmt     = "chimeraInit found in %s"
	DoctorInitMissingFmt   = "chimeraInit not found under %s"
	DoctorInitRecommend    = "Reinstall Chimera or choose another installation with CHIMERADIR."
	DoctorInterpFoundFmt   = "Interpreter %s (%d sys.path entries)"
	DoctorInterpFailFmt    = "No usable interpreter: %v"
	DoctorInterpRecommend  = "Install Python 2.7 or pass --python."
	DoctorSysPathFailFmt   = "Interpreter %s found but sys.path query failed: %v"
	DoctorSysPathRecommend = "Headless runs will not add the interpreter's own sys.path to PYTHONPATH."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-12s %s\n"
	DoctorRecommendationPrefix = "       > "
	DoctorRecommendationIndent = "         "

	DoctorFailureSummary = "Some checks failed. pychimera will not start until they are fixed."
	DoctorSuccessSummary = "All checks passed."
	DoctorFailureError   = "doctor checks failed"
)
