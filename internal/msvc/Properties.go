package msvc

import (
	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Property registration
 ***************************************/

// Addresses one editable value: a key inside a settings map owned by the project model
type ValueCell struct {
	Settings model.Settings
	Key      string
}

func (x ValueCell) Value() (any, bool) { return x.Settings.Get(x.Key) }

type PropertyChoice struct {
	Label string
	Value any
}

// Write-only sink describing the options an exporter understands, no callback flows back
type PropertyListBuilder interface {
	AddProperty(cell ValueCell, label string, choices []PropertyChoice, description string)
}

func choices(pairs ...any) (result []PropertyChoice) {
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, PropertyChoice{Label: pairs[i].(string), Value: pairs[i+1]})
	}
	return
}

var boolChoices = choices("Enabled", true, "Disabled", false)

func (x *Exporter) CreateExporterProperties(props PropertyListBuilder) {
	cell := func(key string) ValueCell { return ValueCell{Settings: x.Settings.Settings, Key: key} }
	descriptor := x.Descriptor()

	props.AddProperty(cell(EXPORTER_TARGET_FOLDER), "Target Project Folder", nil,
		"The location of the folder in which the "+descriptor.Name+" project will be created, relative to the project folder.")

	toolsets := []PropertyChoice{{Label: "(default)", Value: ""}}
	for _, it := range descriptor.Toolsets {
		toolsets = append(toolsets, PropertyChoice{Label: it, Value: it})
	}
	props.AddProperty(cell(EXPORTER_TOOLSET), "Platform Toolset", toolsets,
		"Specifies the version of the platform toolset that will be used when building this project.")

	props.AddProperty(cell(EXPORTER_IPP_LIBRARY), "Use IPP Library", choices(
		"No", "",
		"Yes (Default Mode)", "true",
		"Multi-Threaded Static Library", "Parallel_Static",
		"Single-Threaded Static Library", "Sequential",
		"Multi-Threaded DLL", "Parallel_Dynamic",
		"Single-Threaded DLL", "Sequential_Dynamic"),
		"Enable this to use Intel's Integrated Performance Primitives library.")

	if descriptor.WindowsTargetSdk {
		props.AddProperty(cell(EXPORTER_WINDOWS_SDK_VERSION), "Windows Target Platform", nil,
			"Specifies the version of the Windows SDK that will be used when building this project. Leave empty to use the default.")
	}

	props.AddProperty(cell(EXPORTER_EXTRA_DEFINES), "Extra Preprocessor Definitions", nil,
		"Extra preprocessor definitions, given as KEY=VALUE pairs separated by whitespace.")
	props.AddProperty(cell(EXPORTER_EXTRA_COMPILER_FLAGS), "Extra Compiler Flags", nil,
		"Extra command-line flags passed to the compiler, ${NAME} is replaced by the matching definition.")
	props.AddProperty(cell(EXPORTER_EXTRA_LINKER_FLAGS), "Extra Linker Flags", nil,
		"Extra command-line flags passed to the linker, ${NAME} is replaced by the matching definition.")
	props.AddProperty(cell(EXPORTER_EXTERNAL_LIBRARIES), "External Libraries to Link", nil,
		"Additional libraries to link, one per line.")
	props.AddProperty(cell(EXPORTER_DELAY_LOADED_DLLS), "Delay Loaded DLLs", nil,
		"Libraries loaded only on first use, separated by semicolons.")

	if x.Project.HasPluginFormat(model.TARGET_VST3PLUGIN) {
		props.AddProperty(cell(EXPORTER_VST3_FOLDER), "VST3 SDK Folder", nil,
			"Overrides the global VST3 SDK path for this exporter.")
	}
	if x.Project.HasPluginFormat(model.TARGET_AAXPLUGIN) {
		props.AddProperty(cell(EXPORTER_AAX_FOLDER), "AAX SDK Folder", nil,
			"Overrides the global AAX SDK path for this exporter.")
	}
	if x.Project.HasPluginFormat(model.TARGET_RTASPLUGIN) {
		props.AddProperty(cell(EXPORTER_RTAS_FOLDER), "RTAS SDK Folder", nil,
			"Overrides the global RTAS SDK path for this exporter.")
	}
}

func (x *Exporter) CreateConfigurationProperties(config *model.Configuration, props PropertyListBuilder) {
	if config.Settings == nil {
		config.Settings = model.Settings{}
	}
	cell := func(key string) ValueCell { return ValueCell{Settings: config.Settings, Key: key} }
	debug := config.IsDebug()

	props.AddProperty(cell(CONFIG_IS_DEBUG), "Debug Mode", boolChoices,
		"Whether this configuration is a debug build.")

	optimisations := make([]PropertyChoice, 0, len(GetOptimisationLevels()))
	for _, it := range GetOptimisationLevels() {
		optimisations = append(optimisations, PropertyChoice{Label: it.String(), Value: int(it)})
	}
	props.AddProperty(cell(CONFIG_OPTIMISATION), "Optimisation", optimisations,
		"The optimisation level for this configuration.")

	props.AddProperty(cell(CONFIG_INTERMEDIATES_PATH), "Intermediates Path", nil,
		"An optional path to a folder to use for the intermediate build files. Visual Studio macros like $(Configuration) are allowed.")
	props.AddProperty(cell(CONFIG_BINARY_PATH), "Binary Location", nil,
		"The folder in which the finished binary should be placed, relative to the project folder. Leave empty to use the solution default.")
	props.AddProperty(cell(CONFIG_TARGET_BINARY_NAME), "Binary Name", nil,
		"The filename to use for the destination binary, without the extension.")

	props.AddProperty(cell(CONFIG_WARNING_LEVEL), "Warning Level", choices(
		"Low", 2,
		"Medium", 3,
		"High", 4),
		"The compilation warning level.")
	props.AddProperty(cell(CONFIG_WARNINGS_ARE_ERRORS), "Treat Warnings as Errors", boolChoices,
		"Stops the build when any warning is emitted.")

	props.AddProperty(cell(CONFIG_RUNTIME_LIB_DLL), "Runtime Library", choices(
		RUNTIME_DEFAULT.String(), nil,
		RUNTIME_DLL.String(), true,
		RUNTIME_STATIC.String(), false),
		"Whether the C runtime is linked as a DLL or statically, the default depends on the target.")

	props.AddProperty(cell(CONFIG_WHOLE_PROGRAM_OPT), "Whole Program Optimisation", choices(
		"Enable when possible", 0,
		"Always disable", 1),
		"Whole program optimisation is only used on release configurations.")

	props.AddProperty(cell(CONFIG_INCREMENTAL_LINKING), "Incremental Linking", boolChoices,
		"Enable to avoid a full link when only a few sources changed.")

	if !debug {
		props.AddProperty(cell(CONFIG_DEBUG_SYMBOLS), "Force Generation of Debug Symbols", boolChoices,
			"Generates a program database even for release builds.")
	}

	props.AddProperty(cell(CONFIG_PREBUILD_COMMAND), "Pre-build Command", nil,
		"Command run before the build starts.")
	props.AddProperty(cell(CONFIG_POSTBUILD_COMMAND), "Post-build Command", nil,
		"Command run after a successful build.")

	props.AddProperty(cell(CONFIG_GENERATE_MANIFEST), "Generate Manifest", boolChoices,
		"Embeds a side-by-side manifest in the binary.")

	props.AddProperty(cell(CONFIG_CHARACTER_SET), "Character Set", choices(
		"Default", "",
		"MultiByte", "MultiByte",
		"Unicode", "Unicode"),
		"Character set of the Win32 API macros.")

	props.AddProperty(cell(CONFIG_ARCHITECTURE), "Architecture", choices(
		ARCHITECTURE_32BIT, ARCHITECTURE_32BIT,
		ARCHITECTURE_64BIT, ARCHITECTURE_64BIT),
		"Which Windows architecture to build.")

	props.AddProperty(cell(CONFIG_FAST_MATH), "Relax IEEE Compliance", boolChoices,
		"Enables the fast floating point model, trading accuracy for speed.")

	props.AddProperty(cell(CONFIG_DEFINES), "Preprocessor Definitions", nil,
		"Extra definitions for this configuration only, given as KEY=VALUE pairs separated by whitespace.")
	props.AddProperty(cell(CONFIG_HEADER_PATH), "Header Search Paths", nil,
		"Extra include folders, one per line.")
	props.AddProperty(cell(CONFIG_LIBRARY_PATH), "Extra Library Search Paths", nil,
		"Extra library folders, one per line.")
	props.AddProperty(cell(CONFIG_MODULE_DEFINITION_FILE), "Module Definition File", nil,
		"Path of a .def file passed to the linker.")
}
