package msvc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poppolopoppo/vsexport/internal/model"
)

func TestUserDefinesOrder(t *testing.T) {
	project := makeTestProject(model.PROJECT_GUIAPP)
	project.Exporters[0].Settings.Set(EXPORTER_EXTRA_DEFINES, "C=2")
	project.Exporters[0].Configurations[0].Settings.Set(CONFIG_DEFINES, "B=3")

	exporter := makeTestExporter(t, project)
	debug := findConfig(t, exporter, "Debug")
	release := findConfig(t, exporter, "Release")

	assert.Equal(t, "A=1;WIN32;B=3;C=2", exporter.userPreprocessorDefs(debug).String())
	assert.Equal(t, "A=1;WIN32;B;C=2", exporter.userPreprocessorDefs(release).String())
}

func TestPreprocessorDefsForApplication(t *testing.T) {
	exporter := makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP))
	target := findTarget(t, exporter, model.TARGET_GUIAPP)

	debug := exporter.PreprocessorDefs(target, findConfig(t, exporter, "Debug"))
	assert.Equal(t, []string{
		"_CRT_SECURE_NO_WARNINGS", "WIN32", "_WINDOWS", "DEBUG", "_DEBUG",
		"A", "B", exporter.ExporterIdentifierMacro(), "JUCE_APP_VERSION", "JUCE_APP_VERSION_HEX",
	}, debug.Keys())

	value, _ := debug.Get("A")
	assert.Equal(t, "1", value)
	value, _ = debug.Get("JUCE_APP_VERSION_HEX")
	assert.Equal(t, "0x10203", value)

	release := exporter.PreprocessorDefs(target, findConfig(t, exporter, "Release"))
	_, hasNDebug := release.Get("NDEBUG")
	_, hasDebug := release.Get("_DEBUG")
	assert.True(t, hasNDebug)
	assert.False(t, hasDebug)
}

func TestPreprocessorDefsForConsoleAndLibraries(t *testing.T) {
	console := makeTestExporter(t, makeTestProject(model.PROJECT_CONSOLEAPP))
	defines := console.PreprocessorDefs(findTarget(t, console, model.TARGET_CONSOLEAPP), console.Configs[0])
	_, ok := defines.Get("_CONSOLE")
	assert.True(t, ok)

	library := makeTestExporter(t, makeTestProject(model.PROJECT_STATICLIBRARY))
	defines = library.PreprocessorDefs(findTarget(t, library, model.TARGET_STATICLIBRARY), library.Configs[0])
	keys := defines.Keys()
	assert.Equal(t, "_LIB", keys[len(keys)-1])
}

func TestPluginFormatDefines(t *testing.T) {
	exporter := makePluginExporter(t, model.TARGET_VST3PLUGIN, model.TARGET_AAXPLUGIN)
	debug := findConfig(t, exporter, "Debug")

	shared := exporter.PreprocessorDefs(findTarget(t, exporter, model.TARGET_SHAREDCODE), debug)
	assert.Contains(t, shared.String(),
		"JucePlugin_Build_VST=0;JucePlugin_Build_VST3=1;JucePlugin_Build_AU=0;JucePlugin_Build_AUv3=0;"+
			"JucePlugin_Build_RTAS=0;JucePlugin_Build_AAX=1;JucePlugin_Build_Standalone=0;JUCE_SHARED_CODE=1")

	vst3 := exporter.PreprocessorDefs(findTarget(t, exporter, model.TARGET_VST3PLUGIN), debug)
	assert.Contains(t, vst3.String(), "JucePlugin_Build_VST3=1;JucePlugin_Build_AU=0")
	assert.Contains(t, vst3.String(), "JucePlugin_Build_AAX=0")
	_, ok := vst3.Get("JUCE_SHARED_CODE")
	assert.False(t, ok)
	_, ok = vst3.Get("_LIB")
	assert.False(t, ok)

	aax := exporter.PreprocessorDefs(findTarget(t, exporter, model.TARGET_AAXPLUGIN), debug)
	value, ok := aax.Get("JucePlugin_AAXLibs_path")
	assert.True(t, ok)
	assert.Equal(t, `"..\\..\\Libs"`, value)
}

func TestVersionAsHex(t *testing.T) {
	assert.Equal(t, "0x10203", VersionAsHex("1.2.3"))
	assert.Equal(t, "0x1020304", VersionAsHex("1.2.3.4"))
	assert.Equal(t, "0x10000", VersionAsHex("1"))
	assert.Equal(t, "0x0", VersionAsHex(""))
}

func TestExporterIdentifierMacro(t *testing.T) {
	exporter := makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP))
	macro := exporter.ExporterIdentifierMacro()
	assert.True(t, strings.HasPrefix(macro, "JUCER_VS2015_"), macro)
	assert.Len(t, macro, len("JUCER_VS2015_")+7)
	assert.Equal(t, strings.ToUpper(macro), macro)

	exporter.Settings.Settings.Set(EXPORTER_TARGET_FOLDER, "Builds/Other")
	assert.NotEqual(t, macro, exporter.ExporterIdentifierMacro())
}

func TestReplacePreprocessorTokens(t *testing.T) {
	exporter := makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP))
	debug := findConfig(t, exporter, "Debug")
	debug.Defines.Set("SUFFIX", "_d")

	assert.Equal(t, "Demo_d.lib ${UNKNOWN}", exporter.ReplacePreprocessorTokens(debug, "Demo${SUFFIX}.lib ${UNKNOWN}"))
	assert.Equal(t, "1.lib", exporter.ReplacePreprocessorTokens(debug, "${A}.lib"))
}

func TestRuntimeLinkageDefaults(t *testing.T) {
	exporter := makePluginExporter(t, model.TARGET_VST3PLUGIN, model.TARGET_AAXPLUGIN, model.TARGET_RTASPLUGIN)
	debug := findConfig(t, exporter, "Debug")

	vst3 := findTarget(t, exporter, model.TARGET_VST3PLUGIN)
	aax := findTarget(t, exporter, model.TARGET_AAXPLUGIN)
	rtas := findTarget(t, exporter, model.TARGET_RTASPLUGIN)

	assert.True(t, exporter.UsesRuntimeDLL(vst3, debug))
	assert.False(t, exporter.UsesRuntimeDLL(aax, debug))
	assert.False(t, exporter.UsesRuntimeDLL(rtas, debug))

	resolved := exporter.Resolve(aax, debug)
	assert.Equal(t, "MultiThreadedDebug", resolved.RuntimeLibrary(debug))
	resolved = exporter.Resolve(vst3, debug)
	assert.Equal(t, "MultiThreadedDebugDLL", resolved.RuntimeLibrary(debug))

	debug.RuntimeLibrary = RUNTIME_DLL
	assert.True(t, exporter.UsesRuntimeDLL(aax, debug))
	debug.RuntimeLibrary = RUNTIME_STATIC
	assert.False(t, exporter.UsesRuntimeDLL(vst3, debug))

	release := findConfig(t, exporter, "Release")
	resolved = exporter.Resolve(vst3, release)
	assert.Equal(t, "MultiThreadedDLL", resolved.RuntimeLibrary(release))
}

func TestIncludePaths(t *testing.T) {
	project := makeTestProject(model.PROJECT_GUIAPP)
	project.Modules[0].SearchPaths = []string{"include", "include"}
	project.Exporters[0].Configurations[0].Settings.Set(CONFIG_HEADER_PATH, "ThirdParty/inc\n../../Modules\n$(WindowsSDK)/include")

	exporter := makeTestExporter(t, project)
	paths := exporter.IncludePaths(findTarget(t, exporter, model.TARGET_GUIAPP), findConfig(t, exporter, "Debug"))
	assert.Equal(t, []string{
		`..\..\Modules`,
		`..\..\Modules\juce_core\include`,
		`..\..\ThirdParty\inc`,
		`..\..\..\..\Modules`,
		`$(WindowsSDK)\include`,
		"%(AdditionalIncludeDirectories)",
	}, paths)
}

func TestLibrarySearchPathsAndDependencies(t *testing.T) {
	project := makeTestProject(model.PROJECT_AUDIOPLUGIN, model.TARGET_VST3PLUGIN, model.TARGET_AAXPLUGIN)
	project.Modules[0].HasLibraries = true
	project.Exporters[0].Settings.Set(EXPORTER_EXTERNAL_LIBRARIES, "extra.lib\nother${A}.lib")

	exporter := makeTestExporter(t, project)
	debug := findConfig(t, exporter, "Debug")
	shared := findTarget(t, exporter, model.TARGET_SHAREDCODE)
	vst3 := findTarget(t, exporter, model.TARGET_VST3PLUGIN)
	aax := findTarget(t, exporter, model.TARGET_AAXPLUGIN)

	assert.Equal(t, []string{
		`..\..\Modules\juce_core\libs\VisualStudio2015\$(Platform)\MDd`,
		`$(SolutionDir)$(Configuration)\Shared Code`,
	}, exporter.TargetLibrarySearchPaths(vst3, debug))
	assert.Equal(t, []string{
		`..\..\Modules\juce_core\libs\VisualStudio2015\$(Platform)\MTd`,
		`$(SolutionDir)$(Configuration)\Shared Code`,
	}, exporter.TargetLibrarySearchPaths(aax, debug))
	assert.Equal(t, []string{
		`..\..\Modules\juce_core\libs\VisualStudio2015\$(Platform)\MDd`,
	}, exporter.TargetLibrarySearchPaths(shared, debug))

	assert.Equal(t, "extra.lib;other1.lib;winmm.lib;Demo.lib", exporter.ExternalLibraries(vst3, debug))
	assert.Equal(t, "extra.lib;other1.lib;winmm.lib", exporter.ExternalLibraries(shared, debug))
}

func TestRtasExtras(t *testing.T) {
	project := makeTestProject(model.PROJECT_AUDIOPLUGIN, model.TARGET_RTASPLUGIN)
	project.DependencyPaths = map[model.TargetOS]map[string]string{
		model.TARGETOS_WINDOWS: {DEPENDENCY_RTAS_PATH: "C:/SDKs/RTAS"},
	}
	project.Exporters[0].Settings.Set(EXPORTER_DELAY_LOADED_DLLS, "user.dll; ")
	project.Exporters[0].Settings.Set(EXPORTER_EXTRA_LINKER_FLAGS, "/NOLOGO")

	exporter := makeTestExporter(t, project)
	rtas := findTarget(t, exporter, model.TARGET_RTASPLUGIN)
	debug := findConfig(t, exporter, "Debug")

	assert.Equal(t, "/NOLOGO /FORCE:multiple", exporter.ExtraLinkerFlags(rtas, debug))
	assert.True(t, strings.HasPrefix(exporter.DelayLoadedDLLs(rtas), "user.dll;DAE.dll; DigiExt.dll;"))

	defines := exporter.PreprocessorDefs(rtas, debug)
	value, _ := defines.Get("JucePlugin_WinBag_path")
	assert.Equal(t, `"C:\\SDKs\\RTAS\\WinBag"`, value)

	paths := exporter.IncludePaths(rtas, debug)
	assert.Contains(t, paths, `"C:\\SDKs\\RTAS\\AlturaPorts\\TDMPlugins\\common"`)
}

func TestExporterSdkFolderOverride(t *testing.T) {
	project := makeTestProject(model.PROJECT_AUDIOPLUGIN, model.TARGET_AAXPLUGIN)
	project.DependencyPaths = map[model.TargetOS]map[string]string{
		model.TARGETOS_WINDOWS: {DEPENDENCY_AAX_PATH: "C:/SDKs/AAX"},
	}
	exporter := makeTestExporter(t, project)
	assert.Equal(t, "C:/SDKs/AAX", exporter.AAXFolder().String())

	exporter.Settings.Settings.Set(EXPORTER_AAX_FOLDER, "SDKs/aax")
	assert.Equal(t, "SDKs/aax", exporter.AAXFolder().String())
	assert.True(t, exporter.VST3Folder().IsEmpty())
}
