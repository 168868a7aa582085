package msvc

import (
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Configuration setting keys
 ***************************************/

const (
	CONFIG_IS_DEBUG               = "isDebug"
	CONFIG_OPTIMISATION           = "optimisation"
	CONFIG_WARNING_LEVEL          = "winWarningLevel"
	CONFIG_WARNINGS_ARE_ERRORS    = "warningsAreErrors"
	CONFIG_PREBUILD_COMMAND       = model.CONFIG_PREBUILD_COMMAND
	CONFIG_POSTBUILD_COMMAND      = "postbuildCommand"
	CONFIG_DEBUG_SYMBOLS          = "alwaysGenerateDebugSymbols"
	CONFIG_GENERATE_MANIFEST      = "generateManifest"
	CONFIG_INCREMENTAL_LINKING    = "enableIncrementalLinking"
	CONFIG_WHOLE_PROGRAM_OPT      = "wholeProgramOptimisation"
	CONFIG_RUNTIME_LIB_DLL        = "useRuntimeLibDLL"
	CONFIG_INTERMEDIATES_PATH     = "intermediatesPath"
	CONFIG_CHARACTER_SET          = "characterSet"
	CONFIG_ARCHITECTURE           = "winArchitecture"
	CONFIG_FAST_MATH              = "fastMath"
	CONFIG_TARGET_BINARY_NAME     = model.CONFIG_TARGET_BINARY_NAME
	CONFIG_BINARY_PATH            = "binaryPath"
	CONFIG_DEFINES                = "defines"
	CONFIG_HEADER_PATH            = "headerPath"
	CONFIG_LIBRARY_PATH           = "libraryPath"
	CONFIG_MODULE_DEFINITION_FILE = "msvcModuleDefinitionFile"
)

const (
	ARCHITECTURE_32BIT = "32-bit"
	ARCHITECTURE_64BIT = "x64"
)

/***************************************
 * OptimisationLevel
 ***************************************/

type OptimisationLevel int

const (
	OPTIMISATION_OFF      OptimisationLevel = 1
	OPTIMISATION_MINSIZE  OptimisationLevel = 2
	OPTIMISATION_MAXSPEED OptimisationLevel = 3
)

func GetOptimisationLevels() []OptimisationLevel {
	return []OptimisationLevel{
		OPTIMISATION_OFF,
		OPTIMISATION_MINSIZE,
		OPTIMISATION_MAXSPEED,
	}
}
func (x OptimisationLevel) String() string {
	switch x {
	case OPTIMISATION_OFF:
		return "No optimisation"
	case OPTIMISATION_MINSIZE:
		return "Minimise size"
	case OPTIMISATION_MAXSPEED:
		return "Maximise speed"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

// Value of the ClCompile Optimization element, unknown levels disable optimisations
func (x OptimisationLevel) MsvcString() string {
	switch x {
	case OPTIMISATION_MAXSPEED:
		return "Full"
	case OPTIMISATION_MINSIZE:
		return "MinSpace"
	default:
		return "Disabled"
	}
}

/***************************************
 * RuntimeLinkage
 ***************************************/

type RuntimeLinkage byte

const (
	RUNTIME_DEFAULT RuntimeLinkage = iota
	RUNTIME_STATIC
	RUNTIME_DLL
)

func (x RuntimeLinkage) String() string {
	switch x {
	case RUNTIME_DEFAULT:
		return "(Default)"
	case RUNTIME_STATIC:
		return "Use static runtime"
	case RUNTIME_DLL:
		return "Use DLL runtime"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * BuildConfig
 ***************************************/

// Immutable view over one build configuration, defaults are applied here and
// never written back to the project model.
type BuildConfig struct {
	Name                 string
	Debug                bool
	Optimisation         OptimisationLevel
	WarningLevel         int
	WarningsAsErrors     bool
	PrebuildCommand      string
	PostbuildCommand     string
	DebugSymbols         bool
	GenerateManifest     bool
	IncrementalLinking   bool
	DisableWholeProgram  bool
	RuntimeLibrary       RuntimeLinkage
	IntermediatesPath    string
	CharacterSet         string
	Architecture         string
	FastMath             bool
	TargetBinaryName     string
	BinaryPath           string
	Defines              Defines
	HeaderSearchPaths    []string
	LibrarySearchPaths   []string
	ModuleDefinitionFile string
}

func NewBuildConfig(project *model.Project, config *model.Configuration) *BuildConfig {
	settings := config.Settings
	if settings == nil {
		settings = model.Settings{}
	}

	result := &BuildConfig{
		Name:                 config.Name,
		Debug:                config.IsDebug(),
		WarningLevel:         settings.Int(CONFIG_WARNING_LEVEL, 0),
		WarningsAsErrors:     settings.Bool(CONFIG_WARNINGS_ARE_ERRORS, false),
		PrebuildCommand:      settings.String(CONFIG_PREBUILD_COMMAND),
		PostbuildCommand:     settings.String(CONFIG_POSTBUILD_COMMAND),
		DebugSymbols:         settings.Bool(CONFIG_DEBUG_SYMBOLS, false),
		GenerateManifest:     settings.Bool(CONFIG_GENERATE_MANIFEST, true),
		IncrementalLinking:   settings.Bool(CONFIG_INCREMENTAL_LINKING, false),
		DisableWholeProgram:  settings.Int(CONFIG_WHOLE_PROGRAM_OPT, 0) > 0,
		IntermediatesPath:    settings.TrimmedString(CONFIG_INTERMEDIATES_PATH),
		CharacterSet:         settings.TrimmedString(CONFIG_CHARACTER_SET),
		Architecture:         settings.TrimmedString(CONFIG_ARCHITECTURE),
		FastMath:             settings.Bool(CONFIG_FAST_MATH, false),
		TargetBinaryName:     settings.TrimmedString(CONFIG_TARGET_BINARY_NAME),
		BinaryPath:           settings.TrimmedString(CONFIG_BINARY_PATH),
		Defines:              ParsePreprocessorDefs(settings.String(CONFIG_DEFINES)),
		HeaderSearchPaths:    settings.StringList(CONFIG_HEADER_PATH),
		LibrarySearchPaths:   settings.StringList(CONFIG_LIBRARY_PATH),
		ModuleDefinitionFile: settings.TrimmedString(CONFIG_MODULE_DEFINITION_FILE),
	}

	if result.WarningLevel == 0 {
		result.WarningLevel = 4
	}
	if len(result.Architecture) == 0 {
		result.Architecture = ARCHITECTURE_64BIT
	}
	if len(result.TargetBinaryName) == 0 {
		result.TargetBinaryName = project.Name
	}

	switch level := OptimisationLevel(settings.Int(CONFIG_OPTIMISATION, 0)); level {
	case OPTIMISATION_OFF, OPTIMISATION_MINSIZE, OPTIMISATION_MAXSPEED:
		result.Optimisation = level
	default:
		result.Optimisation = DefaultOptimisationLevel(result.Debug)
	}

	if dll, ok := settings.GetBool(CONFIG_RUNTIME_LIB_DLL); ok {
		if dll {
			result.RuntimeLibrary = RUNTIME_DLL
		} else {
			result.RuntimeLibrary = RUNTIME_STATIC
		}
	}

	return result
}

func DefaultOptimisationLevel(debug bool) OptimisationLevel {
	if debug {
		return OPTIMISATION_OFF
	}
	return OPTIMISATION_MAXSPEED
}

func (x *BuildConfig) Is64Bit() bool {
	return x.Architecture == ARCHITECTURE_64BIT
}
func (x *BuildConfig) PlatformName() string {
	if x.Is64Bit() {
		return "x64"
	}
	return "Win32"
}

// Composite key used for conditions and solution mappings, eg. "Debug|x64"
func (x *BuildConfig) ConfigName() string {
	return x.Name + "|" + x.PlatformName()
}

func (x *BuildConfig) Condition() string {
	return "'$(Configuration)|$(Platform)'=='" + x.ConfigName() + "'"
}

// Forcing the suffix replaces any extension the user may have typed in the binary name
func (x *BuildConfig) OutputFilename(suffix string, forceSuffix bool) string {
	target := CreateLegalFileName(strings.TrimSpace(x.TargetBinaryName))
	if forceSuffix || !strings.ContainsRune(target, '.') {
		if i := strings.LastIndexByte(target, '.'); i >= 0 {
			target = target[:i]
		}
		return target + suffix
	}
	return target
}

// Prebuilt module libraries live in one sub-folder per platform and runtime flavour
func (x *BuildConfig) LibrarySubdirPath(runtimeDLL bool) string {
	result := "$(Platform)\\"
	if runtimeDLL {
		result += "MD"
	} else {
		result += "MT"
	}
	if x.Debug {
		result += "d"
	}
	return result
}

// Edit and continue is only available for unoptimised 32-bit builds
func (x *BuildConfig) UsesEditAndContinue() bool {
	return x.Debug && x.Optimisation <= OPTIMISATION_OFF && !x.Is64Bit()
}
func (x *BuildConfig) DebugInformationFormat() string {
	if !x.Debug || x.Optimisation > OPTIMISATION_OFF {
		return ""
	}
	if x.UsesEditAndContinue() {
		return "EditAndContinue"
	}
	return "ProgramDatabase"
}

func (x *BuildConfig) ShouldGenerateDebugInformation() bool {
	return x.Debug || x.DebugSymbols
}
func (x *BuildConfig) UsesWholeProgramOptimisation() bool {
	return !x.Debug && !x.DisableWholeProgram
}

const illegalFileNameCharacters = "\"#@,;:<>*^|?\\/"

func CreateLegalFileName(in string) string {
	result := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalFileNameCharacters, r) {
			return -1
		}
		return r
	}, in)
	if len(result) > 128 {
		result = result[:128]
	}
	return result
}
