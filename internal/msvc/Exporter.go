package msvc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
)

var LogMsvc = base.NewLogCategory("Msvc")

var ErrNoSupportedTargets = errors.New("exporter does not support any of the project targets")

/***************************************
 * Exporter setting keys
 ***************************************/

const (
	EXPORTER_TARGET_FOLDER        = "targetFolder"
	EXPORTER_EXTRA_DEFINES        = "extraDefs"
	EXPORTER_EXTRA_COMPILER_FLAGS = "extraCompilerFlags"
	EXPORTER_EXTRA_LINKER_FLAGS   = "extraLinkerFlags"
	EXPORTER_EXTERNAL_LIBRARIES   = "externalLibraries"
	EXPORTER_DELAY_LOADED_DLLS    = "msvcDelayLoadedDLLs"
	EXPORTER_TOOLSET              = "toolset"
	EXPORTER_IPP_LIBRARY          = "IPPLibrary"
	EXPORTER_WINDOWS_SDK_VERSION  = "windowsTargetPlatformVersion"
	EXPORTER_VST3_FOLDER          = "vst3Folder"
	EXPORTER_AAX_FOLDER           = "aaxFolder"
	EXPORTER_RTAS_FOLDER          = "rtasFolder"
)

// Keys of the global dependency paths stored per target OS
const (
	DEPENDENCY_VST3_PATH = "vst3Path"
	DEPENDENCY_AAX_PATH  = "aaxPath"
	DEPENDENCY_RTAS_PATH = "rtasPath"
)

/***************************************
 * Exporter
 ***************************************/

// One Visual Studio exporter of a project, built fresh for every generation run
type Exporter struct {
	Project      *model.Project
	Settings     *model.Exporter
	Version      VisualStudioVersion
	Rebaser      PathRebaser
	TargetFolder string
	Configs      []*BuildConfig
	Targets      []*Target

	extraDefines Defines
}

func NewExporter(project *model.Project, settings *model.Exporter) (*Exporter, error) {
	var version VisualStudioVersion
	if err := version.Set(settings.Type); err != nil {
		return nil, fmt.Errorf("unknown Visual Studio exporter %q: %w", settings.Type, err)
	}

	if settings.Settings == nil {
		settings.Settings = model.Settings{}
	}
	if settings.UpgradeSettings() {
		base.LogVerbose(LogMsvc, "%v: migrated legacy settings of project %q", version, project.Name)
	}

	exporter := &Exporter{
		Project:  project,
		Settings: settings,
		Version:  version,
	}

	targetFolder := settings.Settings.TrimmedString(EXPORTER_TARGET_FOLDER)
	if len(targetFolder) == 0 {
		targetFolder = "Builds/" + version.Descriptor().FolderName
	}
	exporter.TargetFolder = filepath.Clean(filepath.Join(project.Folder, filepath.FromSlash(targetFolder)))
	if filepath.IsAbs(filepath.FromSlash(targetFolder)) {
		exporter.TargetFolder = filepath.Clean(targetFolder)
	}
	exporter.Rebaser = PathRebaser{
		ProjectFolder:     filepath.ToSlash(project.Folder),
		BuildTargetFolder: filepath.ToSlash(exporter.TargetFolder),
	}

	exporter.extraDefines = NewDefines("_CRT_SECURE_NO_WARNINGS")
	if project.Type.IsCommandLineApp() {
		exporter.extraDefines.Set("_CONSOLE", "")
	}

	exporter.Configs = make([]*BuildConfig, len(settings.Configurations))
	for i, config := range settings.Configurations {
		exporter.Configs[i] = NewBuildConfig(project, config)
	}

	exporter.Targets = exporter.createTargets(project.Type.Targets(project.PluginFormats...)...)
	if len(exporter.Targets) == 0 {
		return nil, fmt.Errorf("%v: %w", version, ErrNoSupportedTargets)
	}

	base.LogTrace(LogMsvc, "%v: %d targets, %d configurations in %q",
		version, len(exporter.Targets), len(exporter.Configs), exporter.TargetFolder)
	return exporter, nil
}

func (x *Exporter) createTargets(types ...model.TargetType) (targets []*Target) {
	for _, it := range types {
		if it == model.TARGET_AGGREGATE {
			continue
		}
		if traits, ok := GetTargetTraits(it); ok {
			targets = append(targets, newTarget(x, it, traits))
		} else {
			base.LogVerbose(LogMsvc, "%v: skipping unsupported target %v", x.Version, it)
		}
	}
	return
}

func (x *Exporter) Descriptor() *VersionDescriptor {
	return x.Version.Descriptor()
}

// File name root shared by every generated project document
func (x *Exporter) ProjectFilenameRoot() string {
	return CreateLegalFileName(x.Project.Name)
}

func (x *Exporter) ProjectFile(extension, targetName string) string {
	filename := x.ProjectFilenameRoot()
	if len(targetName) > 0 {
		filename += " (" + targetName + ")"
	}
	return filepath.Join(x.TargetFolder, filename+extension)
}

func (x *Exporter) SolutionFile() string {
	return x.ProjectFile(".sln", "")
}

func (x *Exporter) SharedCodeTarget() *Target {
	return x.FindTarget(model.TARGET_SHAREDCODE)
}
func (x *Exporter) FindTarget(targetType model.TargetType) *Target {
	for _, it := range x.Targets {
		if it.Type == targetType {
			return it
		}
	}
	return nil
}
func (x *Exporter) HasResourceFile() bool {
	return !x.Project.Type.IsStaticLibrary()
}

func (x *Exporter) PlatformToolset() string {
	if toolset := x.Settings.Settings.TrimmedString(EXPORTER_TOOLSET); len(toolset) > 0 {
		return toolset
	}
	return x.Descriptor().DefaultToolset
}

func (x *Exporter) IPPLibrary() string {
	return x.Settings.Settings.TrimmedString(EXPORTER_IPP_LIBRARY)
}

func (x *Exporter) WindowsTargetPlatformVersion() string {
	if !x.Descriptor().WindowsTargetSdk {
		return ""
	}
	return x.Settings.Settings.TrimmedString(EXPORTER_WINDOWS_SDK_VERSION)
}

/***************************************
 * SDK folders
 ***************************************/

// Exporter setting overrides the global path, an unknown SDK degrades to an empty project-relative path
func (x *Exporter) dependencyFolder(settingKey, dependencyKey string) RelativePath {
	folder := x.Settings.Settings.TrimmedString(settingKey)
	if len(folder) == 0 {
		folder = x.Project.DependencyPath(model.TARGETOS_WINDOWS, dependencyKey)
	}
	return MakeRelativePath(folder, PATHROOT_PROJECT_FOLDER)
}

func (x *Exporter) VST3Folder() RelativePath {
	return x.dependencyFolder(EXPORTER_VST3_FOLDER, DEPENDENCY_VST3_PATH)
}
func (x *Exporter) AAXFolder() RelativePath {
	return x.dependencyFolder(EXPORTER_AAX_FOLDER, DEPENDENCY_AAX_PATH)
}
func (x *Exporter) RTASFolder() RelativePath {
	return x.dependencyFolder(EXPORTER_RTAS_FOLDER, DEPENDENCY_RTAS_PATH)
}

/***************************************
 * Path helpers
 ***************************************/

// Rebased to the build folder, then escaped and quoted to be embedded in a define
func (x *Exporter) CreateRebasedPath(p RelativePath) string {
	rebased := x.Rebaser.ToBuildTarget(p).ToWindowsStyle()
	return EscapeRebasedPath(rebased, x.Descriptor().VersionNumber < 10)
}

// Project-relative user path, macros and absolute paths are kept untouched
func (x *Exporter) rebaseUserPath(p string) string {
	return x.Rebaser.RebaseProjectFile(p)
}

func prependIfNotAbsolute(file, prefix string) string {
	if IsAbsolutePath(file) {
		prefix = ""
	}
	return prefix + strings.ReplaceAll(file, "/", "\\")
}

func (x *Exporter) IntDirFile(c *BuildConfig, file string) string {
	return prependIfNotAbsolute(x.ReplacePreprocessorTokens(c, file), "$(IntDir)\\")
}
func (x *Exporter) OutDirFile(c *BuildConfig, file string) string {
	return prependIfNotAbsolute(x.ReplacePreprocessorTokens(c, file), "$(OutDir)\\")
}

// Prefixes relative paths with ".\", the way Visual Studio writes solution-relative paths
func prependDot(filename string) string {
	if IsAbsolutePath(filename) {
		return filename
	}
	return ".\\" + filename
}

func (x *Exporter) String() string {
	return fmt.Sprintf("%v exporter of %q", x.Version, x.Project.Name)
}
