package msvc

import (
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Target
 ***************************************/

// One generated project document, its identity is computed once at construction
type Target struct {
	Type   model.TargetType
	Traits *TargetTraits

	name  string
	guid  string
	owner *Exporter
}

func newTarget(owner *Exporter, targetType model.TargetType, traits *TargetTraits) *Target {
	name := targetType.Name()
	return &Target{
		Type:   targetType,
		Traits: traits,
		name:   name,
		guid:   TargetGUID(owner.Project.UID, name),
		owner:  owner,
	}
}

func (x *Target) Name() string        { return x.name }
func (x *Target) ProjectGuid() string { return x.guid }
func (x *Target) String() string      { return x.name }

func (x *Target) TargetSuffix() string      { return x.Traits.Suffix }
func (x *Target) ConfigurationType() string { return x.Traits.ConfigurationType }

func (x *Target) IsSharedCode() bool {
	return x.Type == model.TARGET_SHAREDCODE
}
func (x *Target) IsLibrary() bool {
	switch x.Type.FileType() {
	case model.TARGETFILE_STATICLIBRARY, model.TARGETFILE_SHAREDLIBRARY:
		return true
	default:
		return false
	}
}
func (x *Target) IsStaticLibrary() bool {
	return x.Type.FileType() == model.TARGETFILE_STATICLIBRARY
}

func (x *Target) ProjectFile() string {
	return x.owner.ProjectFile(".vcxproj", x.name)
}
func (x *Target) ProjectFileName() string {
	return filepath.Base(x.ProjectFile())
}
func (x *Target) FiltersFile() string {
	return x.ProjectFile() + ".filters"
}

// Plug-in formats link against the shared code, the shared code itself does not
func (x *Target) dependsOnSharedCode() *Target {
	if x.IsSharedCode() {
		return nil
	}
	return x.owner.SharedCodeTarget()
}

/***************************************
 * Output paths
 ***************************************/

func (x *Target) SolutionTargetPath(c *BuildConfig) string {
	binaryPath := strings.TrimSpace(c.BinaryPath)
	if len(binaryPath) == 0 {
		return "$(SolutionDir)$(Configuration)"
	}

	binaryRelPath := MakeRelativePath(binaryPath, PATHROOT_PROJECT_FOLDER)
	if binaryRelPath.IsAbsolute() {
		return binaryRelPath.ToWindowsStyle()
	}
	return prependDot(x.owner.Rebaser.ToBuildTarget(binaryRelPath).ToWindowsStyle())
}

func (x *Target) ConfigTargetPath(c *BuildConfig) string {
	return x.SolutionTargetPath(c) + "\\" + x.name
}

func (x *Target) IntermediatesPath(c *BuildConfig) string {
	intDir := c.IntermediatesPath
	if len(intDir) == 0 {
		intDir = "$(Configuration)"
	}
	if !strings.HasSuffix(intDir, "\\") {
		intDir += "\\"
	}
	return intDir + x.name
}

func (x *Target) BinaryNameWithSuffix(c *BuildConfig) string {
	return c.OutputFilename(x.TargetSuffix(), true)
}
func (x *Target) OutputFilePath(c *BuildConfig) string {
	return x.owner.OutDirFile(c, x.BinaryNameWithSuffix(c))
}

/***************************************
 * Build steps
 ***************************************/

// Injected steps follow the user command, separated by a line break only when both exist
func joinBuildSteps(userCommand, injectedStep string) string {
	if len(userCommand) > 0 && len(injectedStep) > 0 {
		return userCommand + "\r\n" + injectedStep
	}
	return userCommand + injectedStep
}

func (x *Target) PreBuildSteps(c *BuildConfig, resources *ResourceBundle) string {
	var extra string
	if x.Traits.ExtraPreBuildSteps != nil {
		extra = x.Traits.ExtraPreBuildSteps(x, c, resources)
	}
	return joinBuildSteps(c.PrebuildCommand, extra)
}

func (x *Target) PostBuildSteps(c *BuildConfig, resources *ResourceBundle) string {
	var extra string
	if x.Traits.ExtraPostBuildSteps != nil {
		extra = x.Traits.ExtraPostBuildSteps(x, c, resources)
	}
	return joinBuildSteps(c.PostbuildCommand, extra)
}

/***************************************
 * Source files
 ***************************************/

// Target the files of this document are tagged with, non plug-in projects put everything in the shared code
func (x *Target) fileTargetType() model.TargetType {
	if x.owner.Project.Type.IsAudioPlugin() {
		return x.Type
	}
	return model.TARGET_SHAREDCODE
}

func (x *Target) ShouldCompileFile(item *model.Item) bool {
	return item.ShouldBeCompiled() &&
		model.IsSourceFile(item) &&
		item.TargetType() == x.fileTargetType()
}

func (x *Target) ShouldIncludeHeader(item *model.Item) bool {
	return item.IsFile() &&
		model.IsHeaderFile(item) &&
		item.TargetType() == x.fileTargetType()
}

// Legacy RTAS wrappers must be compiled with the stdcall convention
func shouldUseStdCall(p RelativePath) bool {
	name := p.FileName()
	return strings.HasPrefix(strings.ToLower(name), "juce_audio_plugin_client_") &&
		model.TargetTypeFromFilePath(name) == model.TARGET_RTASPLUGIN
}
