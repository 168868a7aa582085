package msvc

import (
	"strings"

	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Target traits
 ***************************************/

type targetDefinesFunc func(t *Target, c *BuildConfig) Defines
type targetPathsFunc func(t *Target) []string
type targetStepsFunc func(t *Target, c *BuildConfig, resources *ResourceBundle) string

// Everything which depends on the kind of target, consulted instead of branching at every call site
type TargetTraits struct {
	Suffix                  string
	ConfigurationType       string
	DefaultsToStaticRuntime bool
	ExtraLinkerFlags        string
	DelayLoadedDLLs         string
	ExtraDefines            targetDefinesFunc
	ExtraSearchPaths        targetPathsFunc
	ExtraPreBuildSteps      targetStepsFunc
	ExtraPostBuildSteps     targetStepsFunc
}

var targetTraits = map[model.TargetType]*TargetTraits{
	model.TARGET_GUIAPP: {
		Suffix:            ".exe",
		ConfigurationType: "Application",
	},
	model.TARGET_CONSOLEAPP: {
		Suffix:            ".exe",
		ConfigurationType: "Application",
	},
	model.TARGET_STANDALONEPLUGIN: {
		Suffix:            ".exe",
		ConfigurationType: "Application",
	},
	model.TARGET_STATICLIBRARY: {
		Suffix:            ".lib",
		ConfigurationType: "StaticLibrary",
	},
	model.TARGET_SHAREDCODE: {
		Suffix:            ".lib",
		ConfigurationType: "StaticLibrary",
	},
	model.TARGET_DYNAMICLIBRARY: {
		Suffix:            ".dll",
		ConfigurationType: "DynamicLibrary",
	},
	model.TARGET_VSTPLUGIN: {
		Suffix:            ".dll",
		ConfigurationType: "DynamicLibrary",
	},
	model.TARGET_VST3PLUGIN: {
		Suffix:            ".vst3",
		ConfigurationType: "DynamicLibrary",
		ExtraSearchPaths:  vst3SearchPaths,
	},
	model.TARGET_AAXPLUGIN: {
		Suffix:                  ".aaxdll",
		ConfigurationType:       "DynamicLibrary",
		DefaultsToStaticRuntime: true,
		ExtraDefines:            aaxDefines,
		ExtraPreBuildSteps:      aaxPreBuildSteps,
		ExtraPostBuildSteps:     aaxPostBuildSteps,
	},
	model.TARGET_RTASPLUGIN: {
		Suffix:                  ".dpm",
		ConfigurationType:       "DynamicLibrary",
		DefaultsToStaticRuntime: true,
		ExtraLinkerFlags:        "/FORCE:multiple",
		DelayLoadedDLLs: "DAE.dll; DigiExt.dll; DSI.dll; PluginLib.dll; " +
			"DSPManager.dll; DSPManager.dll; DSPManagerClientLib.dll; RTASClientLib.dll",
		ExtraDefines:     rtasDefines,
		ExtraSearchPaths: rtasSearchPaths,
	},
}

// Aggregate and Apple-only targets have no traits: they are never exported for Windows
func GetTargetTraits(target model.TargetType) (*TargetTraits, bool) {
	traits, ok := targetTraits[target]
	return traits, ok
}

func IsSupportedTargetType(target model.TargetType) bool {
	_, ok := targetTraits[target]
	return ok
}

/***************************************
 * AAX
 ***************************************/

func aaxDefines(t *Target, _ *BuildConfig) Defines {
	libs := t.owner.AAXFolder().ChildFile("Libs")
	return Defines{{Key: "JucePlugin_AAXLibs_path", Value: t.owner.CreateRebasedPath(libs)}}
}

type aaxBundlePaths struct {
	BundleDir      string
	BundleContents string
	BinaryDir      string
}

func makeAaxBundlePaths(t *Target, c *BuildConfig, forceSuffix bool) (result aaxBundlePaths) {
	result.BundleDir = t.owner.OutDirFile(c, c.OutputFilename(".aaxplugin", forceSuffix))
	result.BundleContents = result.BundleDir + "\\Contents"
	result.BinaryDir = result.BundleContents + "\\" + c.PlatformName()
	return
}

func aaxPreBuildSteps(t *Target, c *BuildConfig, _ *ResourceBundle) string {
	bundle := makeAaxBundlePaths(t, c, false)

	sb := strings.Builder{}
	for _, folder := range []string{bundle.BundleDir, bundle.BundleContents, bundle.BinaryDir} {
		sb.WriteString("if not exist \"" + folder + "\" mkdir \"" + folder + "\"\r\n")
	}
	return sb.String()
}

func aaxPostBuildSteps(t *Target, c *BuildConfig, resources *ResourceBundle) string {
	bundle := makeAaxBundlePaths(t, c, true)
	executable := bundle.BinaryDir + "\\" + c.OutputFilename(".aaxplugin", true)
	bundleScript := t.owner.AAXFolder().ChildFile("Utilities").ChildFile("CreatePackage.bat")

	return "copy /Y \"" + t.OutputFilePath(c) + "\" \"" + executable + "\"\r\n" +
		t.owner.CreateRebasedPath(bundleScript) + " \"" + bundle.BinaryDir + "\" " +
		t.owner.CreateRebasedPath(aaxIconFile(t, resources))
}

// The generated icon is preferred, the one shipped with the SDK is used otherwise
func aaxIconFile(t *Target, resources *ResourceBundle) RelativePath {
	if resources != nil && resources.HasIcon() {
		return t.owner.Rebaser.ToProject(MakeRelativePath(resources.IconFileName(), PATHROOT_BUILD_TARGET_FOLDER))
	}
	return t.owner.AAXFolder().ChildFile("Utilities").ChildFile("PlugIn.ico")
}

/***************************************
 * RTAS
 ***************************************/

var rtasSdkSearchPaths = []string{
	"AlturaPorts/TDMPlugins/PluginLibrary/EffectClasses",
	"AlturaPorts/TDMPlugins/PluginLibrary/ProcessClasses",
	"AlturaPorts/TDMPlugins/PluginLibrary/ProcessClasses/Interfaces",
	"AlturaPorts/TDMPlugins/PluginLibrary/Utilities",
	"AlturaPorts/TDMPlugins/PluginLibrary/RTASP_Adapt",
	"AlturaPorts/TDMPlugins/PluginLibrary/CoreClasses",
	"AlturaPorts/TDMPlugins/PluginLibrary/Controls",
	"AlturaPorts/TDMPlugins/PluginLibrary/Meters",
	"AlturaPorts/TDMPlugins/PluginLibrary/ViewClasses",
	"AlturaPorts/TDMPlugins/PluginLibrary/DSPClasses",
	"AlturaPorts/TDMPlugins/PluginLibrary/Interfaces",
	"AlturaPorts/TDMPlugins/common",
	"AlturaPorts/TDMPlugins/common/Platform",
	"AlturaPorts/TDMPlugins/common/Macros",
	"AlturaPorts/TDMPlugins/SignalProcessing/Public",
	"AlturaPorts/TDMPlugIns/DSPManager/Interfaces",
	"AlturaPorts/SADriver/Interfaces",
	"AlturaPorts/DigiPublic/Interfaces",
	"AlturaPorts/DigiPublic",
	"AlturaPorts/Fic/Interfaces/DAEClient",
	"AlturaPorts/NewFileLibs/Cmn",
	"AlturaPorts/NewFileLibs/DOA",
	"AlturaPorts/AlturaSource/PPC_H",
	"AlturaPorts/AlturaSource/AppSupport",
	"AvidCode/AVX2sdk/AVX/avx2/avx2sdk/inc",
	"xplat/AVX/avx2/avx2sdk/inc",
}

func rtasDefines(t *Target, _ *BuildConfig) Defines {
	winBag := t.owner.RTASFolder().ChildFile("WinBag")
	return Defines{{Key: "JucePlugin_WinBag_path", Value: t.owner.CreateRebasedPath(winBag)}}
}

func rtasSearchPaths(t *Target) []string {
	sdk := t.owner.RTASFolder()
	result := make([]string, len(rtasSdkSearchPaths))
	for i, it := range rtasSdkSearchPaths {
		result[i] = t.owner.CreateRebasedPath(sdk.ChildFile(it))
	}
	return result
}

/***************************************
 * VST3
 ***************************************/

func vst3SearchPaths(t *Target) []string {
	sdk := t.owner.VST3Folder()
	if sdk.IsEmpty() {
		return nil
	}
	return []string{t.owner.Rebaser.ToBuildTarget(sdk).ToWindowsStyle()}
}
