package model

import (
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * ProjectType
 ***************************************/

type ProjectType byte

const (
	PROJECT_GUIAPP ProjectType = iota
	PROJECT_CONSOLEAPP
	PROJECT_STATICLIBRARY
	PROJECT_DYNAMICLIBRARY
	PROJECT_AUDIOPLUGIN
)

func GetProjectTypes() []ProjectType {
	return []ProjectType{
		PROJECT_GUIAPP,
		PROJECT_CONSOLEAPP,
		PROJECT_STATICLIBRARY,
		PROJECT_DYNAMICLIBRARY,
		PROJECT_AUDIOPLUGIN,
	}
}
func (x ProjectType) Description() string {
	switch x {
	case PROJECT_GUIAPP:
		return "GUI application"
	case PROJECT_CONSOLEAPP:
		return "command-line application"
	case PROJECT_STATICLIBRARY:
		return "static library"
	case PROJECT_DYNAMICLIBRARY:
		return "dynamic library"
	case PROJECT_AUDIOPLUGIN:
		return "audio plug-in, one target per plug-in format plus shared code"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x ProjectType) String() string {
	switch x {
	case PROJECT_GUIAPP:
		return "guiApp"
	case PROJECT_CONSOLEAPP:
		return "consoleApp"
	case PROJECT_STATICLIBRARY:
		return "staticLibrary"
	case PROJECT_DYNAMICLIBRARY:
		return "dynamicLibrary"
	case PROJECT_AUDIOPLUGIN:
		return "audioPlugin"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *ProjectType) Set(in string) (err error) {
	for _, it := range GetProjectTypes() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x ProjectType) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *ProjectType) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

func (x ProjectType) IsAudioPlugin() bool   { return x == PROJECT_AUDIOPLUGIN }
func (x ProjectType) IsStaticLibrary() bool { return x == PROJECT_STATICLIBRARY }
func (x ProjectType) IsCommandLineApp() bool {
	return x == PROJECT_CONSOLEAPP
}

// Audio plug-ins spawn the shared code target, the aggregate and one target per enabled format
func (x ProjectType) Targets(pluginFormats ...TargetType) []TargetType {
	switch x {
	case PROJECT_GUIAPP:
		return []TargetType{TARGET_GUIAPP}
	case PROJECT_CONSOLEAPP:
		return []TargetType{TARGET_CONSOLEAPP}
	case PROJECT_STATICLIBRARY:
		return []TargetType{TARGET_STATICLIBRARY}
	case PROJECT_DYNAMICLIBRARY:
		return []TargetType{TARGET_DYNAMICLIBRARY}
	case PROJECT_AUDIOPLUGIN:
		result := []TargetType{TARGET_SHAREDCODE, TARGET_AGGREGATE}
		for _, it := range GetTargetTypes() {
			if it.IsPluginFormat() && base.Contains(pluginFormats, it) {
				result = append(result, it)
			}
		}
		return result
	default:
		base.UnexpectedValue(x)
		return nil
	}
}

/***************************************
 * TargetType
 ***************************************/

type TargetType byte

const (
	TARGET_GUIAPP TargetType = iota
	TARGET_CONSOLEAPP
	TARGET_STATICLIBRARY
	TARGET_DYNAMICLIBRARY
	TARGET_SHAREDCODE
	TARGET_AGGREGATE
	TARGET_VSTPLUGIN
	TARGET_VST3PLUGIN
	TARGET_AAXPLUGIN
	TARGET_RTASPLUGIN
	TARGET_STANDALONEPLUGIN
	TARGET_AUDIOUNITPLUGIN
	TARGET_AUDIOUNITV3PLUGIN
)

func GetTargetTypes() []TargetType {
	return []TargetType{
		TARGET_GUIAPP,
		TARGET_CONSOLEAPP,
		TARGET_STATICLIBRARY,
		TARGET_DYNAMICLIBRARY,
		TARGET_SHAREDCODE,
		TARGET_AGGREGATE,
		TARGET_VSTPLUGIN,
		TARGET_VST3PLUGIN,
		TARGET_AAXPLUGIN,
		TARGET_RTASPLUGIN,
		TARGET_STANDALONEPLUGIN,
		TARGET_AUDIOUNITPLUGIN,
		TARGET_AUDIOUNITV3PLUGIN,
	}
}

// Display name, used for project file names and target identities
func (x TargetType) Name() string {
	switch x {
	case TARGET_GUIAPP:
		return "App"
	case TARGET_CONSOLEAPP:
		return "ConsoleApp"
	case TARGET_STATICLIBRARY:
		return "Static Library"
	case TARGET_DYNAMICLIBRARY:
		return "Dynamic Library"
	case TARGET_SHAREDCODE:
		return "Shared Code"
	case TARGET_AGGREGATE:
		return "All"
	case TARGET_VSTPLUGIN:
		return "VST"
	case TARGET_VST3PLUGIN:
		return "VST3"
	case TARGET_AAXPLUGIN:
		return "AAX"
	case TARGET_RTASPLUGIN:
		return "RTAS"
	case TARGET_STANDALONEPLUGIN:
		return "Standalone Plugin"
	case TARGET_AUDIOUNITPLUGIN:
		return "AU"
	case TARGET_AUDIOUNITV3PLUGIN:
		return "AUv3 AppExtension"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x TargetType) String() string {
	switch x {
	case TARGET_GUIAPP:
		return "GUIApp"
	case TARGET_CONSOLEAPP:
		return "ConsoleApp"
	case TARGET_STATICLIBRARY:
		return "StaticLibrary"
	case TARGET_DYNAMICLIBRARY:
		return "DynamicLibrary"
	case TARGET_SHAREDCODE:
		return "SharedCode"
	case TARGET_AGGREGATE:
		return "Aggregate"
	case TARGET_VSTPLUGIN:
		return "VST"
	case TARGET_VST3PLUGIN:
		return "VST3"
	case TARGET_AAXPLUGIN:
		return "AAX"
	case TARGET_RTASPLUGIN:
		return "RTAS"
	case TARGET_STANDALONEPLUGIN:
		return "Standalone"
	case TARGET_AUDIOUNITPLUGIN:
		return "AU"
	case TARGET_AUDIOUNITV3PLUGIN:
		return "AUv3"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *TargetType) Set(in string) (err error) {
	for _, it := range GetTargetTypes() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x TargetType) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *TargetType) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

func (x TargetType) IsPluginFormat() bool {
	switch x {
	case TARGET_VSTPLUGIN, TARGET_VST3PLUGIN, TARGET_AAXPLUGIN, TARGET_RTASPLUGIN,
		TARGET_STANDALONEPLUGIN, TARGET_AUDIOUNITPLUGIN, TARGET_AUDIOUNITV3PLUGIN:
		return true
	default:
		return false
	}
}

func (x TargetType) FileType() TargetFileType {
	switch x {
	case TARGET_GUIAPP, TARGET_CONSOLEAPP, TARGET_STANDALONEPLUGIN:
		return TARGETFILE_EXECUTABLE
	case TARGET_STATICLIBRARY, TARGET_SHAREDCODE:
		return TARGETFILE_STATICLIBRARY
	case TARGET_DYNAMICLIBRARY:
		return TARGETFILE_SHAREDLIBRARY
	case TARGET_VSTPLUGIN, TARGET_VST3PLUGIN, TARGET_AAXPLUGIN, TARGET_RTASPLUGIN, TARGET_AUDIOUNITPLUGIN:
		return TARGETFILE_PLUGINBUNDLE
	case TARGET_AUDIOUNITV3PLUGIN:
		return TARGETFILE_APPEXTENSION
	case TARGET_AGGREGATE:
		return TARGETFILE_UNKNOWN
	default:
		base.UnexpectedValue(x)
		return TARGETFILE_UNKNOWN
	}
}

// Plug-in client wrappers are named after the format they implement, other files belong to the shared code
func TargetTypeFromFilePath(filename string) TargetType {
	name := strings.ToLower(filename)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}

	switch {
	case HasTargetSuffix(name, "_vst2"), HasTargetSuffix(name, "_vst"):
		return TARGET_VSTPLUGIN
	case HasTargetSuffix(name, "_vst3"):
		return TARGET_VST3PLUGIN
	case HasTargetSuffix(name, "_aax"):
		return TARGET_AAXPLUGIN
	case HasTargetSuffix(name, "_rtas"):
		return TARGET_RTASPLUGIN
	case HasTargetSuffix(name, "_standalone"):
		return TARGET_STANDALONEPLUGIN
	case HasTargetSuffix(name, "_au"):
		return TARGET_AUDIOUNITPLUGIN
	case HasTargetSuffix(name, "_auv3"):
		return TARGET_AUDIOUNITV3PLUGIN
	default:
		return TARGET_SHAREDCODE
	}
}

// The suffix must be followed by the extension or by a numbered part: "x_rtas.cpp", "x_rtas_1.cpp"
func HasTargetSuffix(filename, suffix string) bool {
	name := strings.ToLower(filename)
	suffix = strings.ToLower(suffix)
	return strings.Contains(name, suffix+".") || strings.Contains(name, suffix+"_")
}

/***************************************
 * TargetFileType
 ***************************************/

type TargetFileType byte

const (
	TARGETFILE_UNKNOWN TargetFileType = iota
	TARGETFILE_EXECUTABLE
	TARGETFILE_STATICLIBRARY
	TARGETFILE_SHAREDLIBRARY
	TARGETFILE_PLUGINBUNDLE
	TARGETFILE_APPEXTENSION
)

func (x TargetFileType) String() string {
	switch x {
	case TARGETFILE_UNKNOWN:
		return "Unknown"
	case TARGETFILE_EXECUTABLE:
		return "Executable"
	case TARGETFILE_STATICLIBRARY:
		return "StaticLibrary"
	case TARGETFILE_SHAREDLIBRARY:
		return "SharedLibrary"
	case TARGETFILE_PLUGINBUNDLE:
		return "PluginBundle"
	case TARGETFILE_APPEXTENSION:
		return "AppExtension"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * TargetOS
 ***************************************/

type TargetOS string

const (
	TARGETOS_WINDOWS TargetOS = "windows"
	TARGETOS_OSX     TargetOS = "osx"
	TARGETOS_LINUX   TargetOS = "linux"
)
