package msvc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * ResolvedSettings
 ***************************************/

// Everything one (target, configuration) pair embeds in its project document
type ResolvedSettings struct {
	Defines            Defines
	IncludePaths       []string
	LibrarySearchPaths []string
	LinkerSearchPaths  []string
	ExternalLibraries  string
	DelayLoadedDLLs    string
	ExtraCompilerFlags string
	ExtraLinkerFlags   string
	RuntimeDLL         bool
}

func (x *ResolvedSettings) PreprocessorDefinitions() string {
	return x.Defines.Join(";")
}

// Token of the ClCompile RuntimeLibrary element
func (x *ResolvedSettings) RuntimeLibrary(c *BuildConfig) string {
	switch {
	case x.RuntimeDLL && c.Debug:
		return "MultiThreadedDebugDLL"
	case x.RuntimeDLL:
		return "MultiThreadedDLL"
	case c.Debug:
		return "MultiThreadedDebug"
	default:
		return "MultiThreaded"
	}
}

func (x *Exporter) Resolve(t *Target, c *BuildConfig) ResolvedSettings {
	return ResolvedSettings{
		Defines:            x.PreprocessorDefs(t, c),
		IncludePaths:       x.IncludePaths(t, c),
		LibrarySearchPaths: x.TargetLibrarySearchPaths(t, c),
		LinkerSearchPaths:  x.LibrarySearchPaths(t, c),
		ExternalLibraries:  x.ExternalLibraries(t, c),
		DelayLoadedDLLs:    x.DelayLoadedDLLs(t),
		ExtraCompilerFlags: strings.TrimSpace(x.ReplacePreprocessorTokens(c, x.Settings.Settings.String(EXPORTER_EXTRA_COMPILER_FLAGS))),
		ExtraLinkerFlags:   x.ExtraLinkerFlags(t, c),
		RuntimeDLL:         x.UsesRuntimeDLL(t, c),
	}
}

/***************************************
 * Preprocessor definitions
 ***************************************/

func (x *Exporter) PreprocessorDefs(t *Target, c *BuildConfig) Defines {
	defines := x.extraDefines.Clone()
	defines.Set("WIN32", "")
	defines.Set("_WINDOWS", "")
	if c.Debug {
		defines.Set("DEBUG", "")
		defines.Set("_DEBUG", "")
	} else {
		defines.Set("NDEBUG", "")
	}

	defines.Merge(x.AllPreprocessorDefs(t.Type, c))

	if t.Traits.ExtraDefines != nil {
		defines.Merge(t.Traits.ExtraDefines(t, c))
	}

	if t.IsLibrary() {
		defines.Set("_LIB", "")
	}
	return defines
}

// User definitions from the most generic to the most specific source, then the generated ones
func (x *Exporter) AllPreprocessorDefs(targetType model.TargetType, c *BuildConfig) Defines {
	defines := x.userPreprocessorDefs(c)
	defines.Set(x.ExporterIdentifierMacro(), "1")
	defines.Set("JUCE_APP_VERSION", x.ProjectVersion())
	defines.Set("JUCE_APP_VERSION_HEX", VersionAsHex(x.ProjectVersion()))
	defines.Merge(pluginFormatDefines(x.Project, targetType))
	return defines
}

func (x *Exporter) userPreprocessorDefs(c *BuildConfig) Defines {
	defines := ParsePreprocessorDefs(x.Project.Defines)
	for _, module := range x.Project.Modules {
		defines.Merge(ParsePreprocessorDefs(module.Defines))
	}
	defines.Merge(ParsePreprocessorDefs(x.Settings.Settings.String(EXPORTER_EXTRA_DEFINES)))
	if c != nil {
		defines.Merge(c.Defines)
	}
	return defines
}

var pluginBuildFormats = []struct {
	Target model.TargetType
	Define string
}{
	{model.TARGET_VSTPLUGIN, "JucePlugin_Build_VST"},
	{model.TARGET_VST3PLUGIN, "JucePlugin_Build_VST3"},
	{model.TARGET_AUDIOUNITPLUGIN, "JucePlugin_Build_AU"},
	{model.TARGET_AUDIOUNITV3PLUGIN, "JucePlugin_Build_AUv3"},
	{model.TARGET_RTASPLUGIN, "JucePlugin_Build_RTAS"},
	{model.TARGET_AAXPLUGIN, "JucePlugin_Build_AAX"},
	{model.TARGET_STANDALONEPLUGIN, "JucePlugin_Build_Standalone"},
}

// Shared code is built with every enabled format, a format target only with itself
func pluginFormatDefines(project *model.Project, targetType model.TargetType) (defines Defines) {
	if !project.Type.IsAudioPlugin() {
		return
	}
	sharedCode := targetType == model.TARGET_SHAREDCODE
	for _, it := range pluginBuildFormats {
		enabled := it.Target == targetType
		if sharedCode {
			enabled = project.HasPluginFormat(it.Target)
		}
		defines.Set(it.Define, base.Blend("0", "1", enabled))
	}
	if sharedCode {
		defines.Set("JUCE_SHARED_CODE", "1")
	}
	return
}

// Unique per exporter and output folder, lets sources detect which exporter built them
func (x *Exporter) ExporterIdentifierMacro() string {
	location := x.Settings.Settings.TrimmedString(EXPORTER_TARGET_FOLDER)
	if len(location) == 0 {
		location = "Builds/" + x.Descriptor().FolderName
	}
	return "JUCER_" + x.Descriptor().Key + "_" + strings.ToUpper(base.StringFingerprint(location).String()[:7])
}

func (x *Exporter) ProjectVersion() string {
	if version := strings.TrimSpace(x.Project.Version); len(version) > 0 {
		return version
	}
	return "1.0.0"
}

func versionSegments(version string) []string {
	return base.SplitAndTrim(version, ".")
}

// Major, minor and patch on 8 bits each, a fourth segment shifts everything left
func VersionAsHex(version string) string {
	segments := versionSegments(version)
	segment := func(i int) int {
		if i < len(segments) {
			value, _ := strconv.Atoi(segments[i])
			return value
		}
		return 0
	}

	value := (segment(0) << 16) + (segment(1) << 8) + segment(2)
	if len(segments) >= 4 {
		value = (value << 8) + segment(3)
	}
	return fmt.Sprintf("0x%x", value)
}

var preprocessorTokenRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Replaces ${NAME} with the value of the user definition NAME, unknown tokens are kept
func (x *Exporter) ReplacePreprocessorTokens(c *BuildConfig, in string) string {
	if !strings.Contains(in, "${") {
		return in
	}
	defines := x.userPreprocessorDefs(c)
	return preprocessorTokenRe.ReplaceAllStringFunc(in, func(token string) string {
		if value, ok := defines.Get(token[2 : len(token)-1]); ok {
			return value
		}
		return token
	})
}

/***************************************
 * Search paths
 ***************************************/

// Header paths of every module and of the configuration, rebased, trimmed and deduplicated
func (x *Exporter) HeaderSearchPaths(c *BuildConfig) []string {
	var paths []string
	for _, module := range x.Project.Modules {
		modulePath := MakeRelativePath(module.Path, PATHROOT_PROJECT_FOLDER)
		paths = append(paths, x.Rebaser.ToBuildTarget(parentPath(modulePath)).ToWindowsStyle())
		for _, it := range module.SearchPaths {
			paths = append(paths, x.Rebaser.ToBuildTarget(modulePath.ChildFile(it)).ToWindowsStyle())
		}
	}
	for _, it := range c.HeaderSearchPaths {
		paths = append(paths, x.rebaseUserPath(it))
	}
	return cleanedStringList(paths...)
}

func (x *Exporter) IncludePaths(t *Target, c *BuildConfig) []string {
	paths := x.HeaderSearchPaths(c)
	if t.Traits.ExtraSearchPaths != nil {
		paths = append(paths, t.Traits.ExtraSearchPaths(t)...)
	}
	return append(cleanedStringList(paths...), "%(AdditionalIncludeDirectories)")
}

// Configuration paths, then the prebuilt libraries of modules for this platform and runtime
func (x *Exporter) LibrarySearchPaths(t *Target, c *BuildConfig) []string {
	var paths []string
	for _, it := range c.LibrarySearchPaths {
		paths = append(paths, x.rebaseUserPath(it))
	}
	for _, module := range x.Project.Modules {
		if !module.HasLibraries {
			continue
		}
		libs := MakeRelativePath(module.Path, PATHROOT_PROJECT_FOLDER).ChildFile("libs").ChildFile(x.Descriptor().FolderName)
		paths = append(paths, x.Rebaser.ToBuildTarget(libs).ToWindowsStyle()+"\\"+c.LibrarySubdirPath(x.UsesRuntimeDLL(t, c)))
	}
	return cleanedStringList(paths...)
}

func (x *Exporter) TargetLibrarySearchPaths(t *Target, c *BuildConfig) []string {
	paths := x.LibrarySearchPaths(t, c)
	if shared := t.dependsOnSharedCode(); shared != nil {
		paths = append(paths, shared.ConfigTargetPath(c))
	}
	return paths
}

/***************************************
 * Link settings
 ***************************************/

func (x *Exporter) moduleLibs() (result []string) {
	for _, module := range x.Project.Modules {
		for _, lib := range module.WindowsLibs {
			if lib = strings.TrimSpace(lib); len(lib) > 0 {
				result = append(result, lib+".lib")
			}
		}
	}
	return
}

func (x *Exporter) ExternalLibraries(t *Target, c *BuildConfig) string {
	var libraries []string
	if otherLibs := strings.Join(x.Settings.Settings.StringList(EXPORTER_EXTERNAL_LIBRARIES), ";"); len(otherLibs) > 0 {
		libraries = append(libraries, otherLibs)
	}
	libraries = append(libraries, x.moduleLibs()...)
	if shared := t.dependsOnSharedCode(); shared != nil {
		libraries = append(libraries, shared.BinaryNameWithSuffix(c))
	}
	return strings.TrimSpace(x.ReplacePreprocessorTokens(c, strings.Join(libraries, ";")))
}

func (x *Exporter) DelayLoadedDLLs(t *Target) string {
	return x.Settings.Settings.TrimmedString(EXPORTER_DELAY_LOADED_DLLS) + t.Traits.DelayLoadedDLLs
}

func (x *Exporter) ExtraLinkerFlags(t *Target, c *BuildConfig) string {
	flags := strings.TrimSpace(x.Settings.Settings.String(EXPORTER_EXTRA_LINKER_FLAGS))
	if extra := t.Traits.ExtraLinkerFlags; len(extra) > 0 {
		if len(flags) > 0 {
			flags += " "
		}
		flags += extra
	}
	return strings.TrimSpace(x.ReplacePreprocessorTokens(c, flags))
}

// Explicit configuration choice wins, then the target default
func (x *Exporter) UsesRuntimeDLL(t *Target, c *BuildConfig) bool {
	switch c.RuntimeLibrary {
	case RUNTIME_DLL:
		return true
	case RUNTIME_STATIC:
		return false
	default:
		return !t.Traits.DefaultsToStaticRuntime
	}
}

/***************************************
 * Helpers
 ***************************************/

func parentPath(p RelativePath) RelativePath {
	if i := strings.LastIndexByte(p.path, '/'); i >= 0 {
		return RelativePath{path: p.path[:i], root: p.root}
	}
	return RelativePath{root: p.root}
}

// Trims, drops empty entries and duplicates, keeps the order of first appearance
func cleanedStringList(in ...string) (result []string) {
	seen := base.StringSet{}
	for _, it := range in {
		if it = strings.TrimSpace(it); len(it) > 0 && seen.AppendUniq(it) {
			result = append(result, it)
		}
	}
	return
}
