package msvc

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
	"github.com/poppolopoppo/vsexport/internal/model"
)

const MSBUILD_XMLNS = "http://schemas.microsoft.com/developer/msbuild/2003"

/***************************************
 * Document stages
 ***************************************/

type vcxprojStage byte

const (
	VCXPROJ_INIT vcxprojStage = iota
	VCXPROJ_CONFIGURATIONS_EMITTED
	VCXPROJ_COMPILE_SETTINGS_EMITTED
	VCXPROJ_LINK_SETTINGS_EMITTED
	VCXPROJ_FILELIST_EMITTED
	VCXPROJ_FINALIZED
)

func (x vcxprojStage) String() string {
	switch x {
	case VCXPROJ_INIT:
		return "Init"
	case VCXPROJ_CONFIGURATIONS_EMITTED:
		return "ConfigurationsEmitted"
	case VCXPROJ_COMPILE_SETTINGS_EMITTED:
		return "CompileSettingsEmitted"
	case VCXPROJ_LINK_SETTINGS_EMITTED:
		return "LinkSettingsEmitted"
	case VCXPROJ_FILELIST_EMITTED:
		return "FileListEmitted"
	case VCXPROJ_FINALIZED:
		return "Finalized"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * VcxprojBuilder
 ***************************************/

// Appends the sections of a target document in the order msbuild expects them
type VcxprojBuilder struct {
	Target    *Target
	Resources *ResourceBundle

	root  *io.XmlElement
	stage vcxprojStage
}

func NewVcxprojBuilder(t *Target, resources *ResourceBundle) *VcxprojBuilder {
	if resources == nil {
		resources = &ResourceBundle{}
	}
	return &VcxprojBuilder{
		Target:    t,
		Resources: resources,
		root: io.NewXmlElement("Project",
			io.XmlAttr{Name: "DefaultTargets", Value: "Build"},
			io.XmlAttr{Name: "ToolsVersion", Value: t.owner.Descriptor().ToolsVersion},
			io.XmlAttr{Name: "xmlns", Value: MSBUILD_XMLNS}),
	}
}

func (x *VcxprojBuilder) Stage() vcxprojStage { return x.stage }

func (x *VcxprojBuilder) advance(from, to vcxprojStage) {
	base.Assert(func() bool { return x.stage == from })
	x.stage = to
}

// Runs every stage and returns the finished document
func (x *VcxprojBuilder) Build() *io.XmlElement {
	x.EmitConfigurations()
	x.EmitCompileSettings()
	x.EmitLinkSettings()
	x.EmitFileList()
	return x.Finalize()
}

func (x *VcxprojBuilder) exporter() *Exporter { return x.Target.owner }

func attr(name, value string) io.XmlAttr {
	return io.XmlAttr{Name: name, Value: value}
}
func condition(c *BuildConfig) io.XmlAttr {
	return attr("Condition", c.Condition())
}
func label(value string) io.XmlAttr {
	return attr("Label", value)
}

/***************************************
 * Configurations
 ***************************************/

func (x *VcxprojBuilder) EmitConfigurations() {
	x.advance(VCXPROJ_INIT, VCXPROJ_CONFIGURATIONS_EMITTED)
	exporter := x.exporter()

	configs := x.root.Child("ItemGroup", label("ProjectConfigurations"))
	for _, c := range exporter.Configs {
		it := configs.Child("ProjectConfiguration", attr("Include", c.ConfigName()))
		it.Element("Configuration", c.Name)
		it.Element("Platform", c.PlatformName())
	}

	globals := x.root.Child("PropertyGroup", label("Globals"))
	globals.Element("ProjectGuid", x.Target.ProjectGuid())

	x.root.Child("Import", attr("Project", "$(VCTargetsPath)\\Microsoft.Cpp.Default.props"))

	for _, c := range exporter.Configs {
		group := x.root.Child("PropertyGroup", condition(c), label("Configuration"))
		group.Element("ConfigurationType", x.Target.ConfigurationType())
		group.Element("UseOfMfc", "false")
		group.InnerString("CharacterSet", c.CharacterSet)
		if c.UsesWholeProgramOptimisation() {
			group.Element("WholeProgramOptimization", "true")
		}
		if c.IncrementalLinking {
			group.Element("LinkIncremental", "true")
		}
		if c.Is64Bit() {
			group.Element("PlatformToolset", exporter.PlatformToolset())
		}
	}

	x.root.Child("Import", attr("Project", "$(VCTargetsPath)\\Microsoft.Cpp.props"))
	x.root.Child("ImportGroup", label("ExtensionSettings"))

	sheets := x.root.Child("ImportGroup", label("PropertySheets"))
	sheets.Child("Import",
		attr("Project", "$(UserRootDir)\\Microsoft.Cpp.$(Platform).user.props"),
		attr("Condition", "exists('$(UserRootDir)\\Microsoft.Cpp.$(Platform).user.props')"),
		label("LocalAppDataPlatform"))

	x.root.Child("PropertyGroup", label("UserMacros"))

	general := x.root.Child("PropertyGroup")
	general.Element("_ProjectFileVersion", "10.0.30319.1")
	general.Element("TargetExt", x.Target.TargetSuffix())

	for _, c := range exporter.Configs {
		if outDir := x.Target.ConfigTargetPath(c); len(outDir) > 0 {
			general.Element("OutDir", outDir+"\\", condition(c))
		}
		general.Element("IntDir", withTrailingBackslash(x.Target.IntermediatesPath(c)), condition(c))
		general.Element("TargetName", exporter.ReplacePreprocessorTokens(c, c.OutputFilename("", false)), condition(c))
		general.Element("GenerateManifest", strconv.FormatBool(c.GenerateManifest), condition(c))

		if paths := exporter.TargetLibrarySearchPaths(x.Target, c); len(paths) > 0 {
			general.Element("LibraryPath", "$(LibraryPath);"+strings.Join(paths, ";"), condition(c))
		}
	}
}

func withTrailingBackslash(p string) string {
	if strings.HasSuffix(p, "\\") {
		return p
	}
	return p + "\\"
}

/***************************************
 * Compile settings
 ***************************************/

func (x *VcxprojBuilder) EmitCompileSettings() {
	x.advance(VCXPROJ_CONFIGURATIONS_EMITTED, VCXPROJ_COMPILE_SETTINGS_EMITTED)
	exporter := x.exporter()

	for _, c := range exporter.Configs {
		resolved := exporter.Resolve(x.Target, c)
		group := x.root.Child("ItemDefinitionGroup", condition(c))

		midl := group.Child("Midl")
		midl.Element("PreprocessorDefinitions", debugOrReleaseDefinition(c)+";%(PreprocessorDefinitions)")
		midl.Element("MkTypLibCompatible", "true")
		midl.Element("SuppressStartupBanner", "true")
		midl.Element("TargetEnvironment", "Win32")
		midl.Element("HeaderFileName", "")

		cl := group.Child("ClCompile")
		cl.Element("Optimization", c.Optimisation.MsvcString())
		cl.InnerString("DebugInformationFormat", c.DebugInformationFormat())
		cl.Element("AdditionalIncludeDirectories", strings.Join(resolved.IncludePaths, ";"))
		cl.Element("PreprocessorDefinitions", resolved.PreprocessorDefinitions()+";%(PreprocessorDefinitions)")
		cl.Element("RuntimeLibrary", resolved.RuntimeLibrary(c))
		cl.Element("RuntimeTypeInfo", "true")
		cl.Element("PrecompiledHeader", "")
		cl.Element("AssemblerListingLocation", "$(IntDir)\\")
		cl.Element("ObjectFileName", "$(IntDir)\\")
		cl.Element("ProgramDataBaseFileName", "$(IntDir)\\")
		cl.Element("WarningLevel", "Level"+strconv.Itoa(c.WarningLevel))
		cl.Element("SuppressStartupBanner", "true")
		cl.Element("MultiProcessorCompilation", "true")
		if c.FastMath {
			cl.Element("FloatingPointModel", "Fast")
		}
		if len(resolved.ExtraCompilerFlags) > 0 {
			cl.Element("AdditionalOptions", resolved.ExtraCompilerFlags+" %(AdditionalOptions)")
		}
		if c.WarningsAsErrors {
			cl.Element("TreatWarningAsError", "true")
		}

		rc := group.Child("ResourceCompile")
		rc.Element("PreprocessorDefinitions", debugOrReleaseDefinition(c)+";%(PreprocessorDefinitions)")
	}
}

func debugOrReleaseDefinition(c *BuildConfig) string {
	return base.Blend("NDEBUG", "_DEBUG", c.Debug)
}

/***************************************
 * Link settings
 ***************************************/

// Appended to the item definition groups opened by the compile stage, one per configuration
func (x *VcxprojBuilder) EmitLinkSettings() {
	x.advance(VCXPROJ_COMPILE_SETTINGS_EMITTED, VCXPROJ_LINK_SETTINGS_EMITTED)
	exporter := x.exporter()

	groups := x.root.ChildrenNamed("ItemDefinitionGroup")
	base.Assert(func() bool { return len(groups) == len(exporter.Configs) })

	for i, c := range exporter.Configs {
		resolved := exporter.Resolve(x.Target, c)
		group := groups[i]

		link := group.Child("Link")
		link.Element("OutputFile", x.Target.OutputFilePath(c))
		link.Element("SuppressStartupBanner", "true")
		link.Element("IgnoreSpecificDefaultLibraries",
			base.Blend("%(IgnoreSpecificDefaultLibraries)", "libcmt.lib; msvcrt.lib;;%(IgnoreSpecificDefaultLibraries)", c.Debug))
		link.Element("GenerateDebugInformation", strconv.FormatBool(c.ShouldGenerateDebugInformation()))
		link.Element("ProgramDatabaseFile", exporter.IntDirFile(c, c.OutputFilename(".pdb", true)))
		link.Element("SubSystem", base.Blend("Windows", "Console", x.Target.Type == model.TARGET_CONSOLEAPP))
		if !c.Is64Bit() {
			link.Element("TargetMachine", "MachineX86")
		}
		if c.UsesEditAndContinue() {
			link.Element("ImageHasSafeExceptionHandlers", "false")
		}
		if !c.Debug {
			link.Element("OptimizeReferences", "true")
			link.Element("EnableCOMDATFolding", "true")
		}
		if len(resolved.LinkerSearchPaths) > 0 {
			paths := exporter.ReplacePreprocessorTokens(c, strings.Join(resolved.LinkerSearchPaths, ";"))
			link.Element("AdditionalLibraryDirectories", paths+";%(AdditionalLibraryDirectories)")
		}
		link.Element("LargeAddressAware", "true")
		if len(resolved.ExternalLibraries) > 0 {
			link.Element("AdditionalDependencies", resolved.ExternalLibraries+";%(AdditionalDependencies)")
		}
		if len(resolved.ExtraLinkerFlags) > 0 {
			link.Element("AdditionalOptions", resolved.ExtraLinkerFlags+" %(AdditionalOptions)")
		}
		link.InnerString("DelayLoadDLLs", resolved.DelayLoadedDLLs)
		link.InnerString("ModuleDefinitionFile", c.ModuleDefinitionFile)

		bsc := group.Child("Bscmake")
		bsc.Element("SuppressStartupBanner", "true")
		bsc.Element("OutputFile", exporter.IntDirFile(c, c.OutputFilename(".bsc", true)))

		if x.Target.IsStaticLibrary() && !c.Is64Bit() {
			group.Child("Lib").Element("TargetMachine", "MachineX86")
		}

		if steps := x.Target.PreBuildSteps(c, x.Resources); len(steps) > 0 {
			group.Child("PreBuildEvent").Element("Command", steps)
		}
		if steps := x.Target.PostBuildSteps(c, x.Resources); len(steps) > 0 {
			group.Child("PostBuildEvent").Element("Command", steps)
		}
	}
}

/***************************************
 * File list
 ***************************************/

// Project files kept by this document, in group tree order
func (x *Target) CollectFiles(filter func(*model.Item) bool) (result []*model.Item) {
	model.WalkItems(x.owner.Project.Groups, func(item *model.Item, _ []*model.Item) error {
		if item.IsFile() && filter(item) {
			result = append(result, item)
		}
		return nil
	})
	return
}

func (x *Target) SourceFiles() []*model.Item { return x.CollectFiles(x.ShouldCompileFile) }
func (x *Target) HeaderFiles() []*model.Item { return x.CollectFiles(x.ShouldIncludeHeader) }

// Item path as it must appear in the document, relative to the build folder
func (x *Target) ItemFilePath(item *model.Item) RelativePath {
	return x.owner.Rebaser.ToBuildTarget(MakeRelativePath(item.File, PATHROOT_PROJECT_FOLDER))
}

func (x *VcxprojBuilder) EmitFileList() {
	x.advance(VCXPROJ_LINK_SETTINGS_EMITTED, VCXPROJ_FILELIST_EMITTED)

	sources := x.root.Child("ItemGroup")
	for _, item := range x.Target.SourceFiles() {
		file := x.Target.ItemFilePath(item)
		cl := sources.Child("ClCompile", attr("Include", file.ToWindowsStyle()))
		if shouldUseStdCall(file) {
			cl.Element("CallingConvention", "StdCall")
		}
	}

	headers := x.root.Child("ItemGroup")
	for _, item := range x.Target.HeaderFiles() {
		headers.Child("ClInclude", attr("Include", x.Target.ItemFilePath(item).ToWindowsStyle()))
	}

	if x.Resources.HasIcon() {
		others := x.root.Child("ItemGroup")
		others.Child("None", attr("Include", prependDot(x.Resources.IconFileName())))
	}

	if x.exporter().HasResourceFile() {
		resources := x.root.Child("ItemGroup")
		resources.Child("ResourceCompile", attr("Include", prependDot(RESOURCES_FILENAME)))
	}
}

/***************************************
 * Finalize
 ***************************************/

func (x *VcxprojBuilder) Finalize() *io.XmlElement {
	x.advance(VCXPROJ_FILELIST_EMITTED, VCXPROJ_FINALIZED)

	x.root.Child("Import", attr("Project", "$(VCTargetsPath)\\Microsoft.Cpp.targets"))
	x.root.Child("ImportGroup", label("ExtensionTargets"))

	x.injectToolsetSettings()
	return x.root
}

// Settings newer toolchains expect in every property group, older ones only where they were emitted
func (x *VcxprojBuilder) injectToolsetSettings() {
	exporter := x.exporter()
	descriptor := exporter.Descriptor()
	groups := x.root.ChildrenNamed("PropertyGroup")

	if descriptor.ToolsetInAllGroups {
		toolset := exporter.PlatformToolset()
		for _, group := range groups {
			if group.FindChild("PlatformToolset") == nil {
				group.Element("PlatformToolset", toolset)
			}
		}
	}

	if ipp := exporter.IPPLibrary(); len(ipp) > 0 {
		for _, group := range groups {
			group.Element("UseIntelIPP", ipp)
		}
	}

	if sdk := exporter.WindowsTargetPlatformVersion(); len(sdk) > 0 {
		for _, group := range groups {
			if value, ok := group.GetAttr("Label"); ok && value == "Globals" {
				group.Element("WindowsTargetPlatformVersion", sdk)
			}
		}
	}
}

/***************************************
 * Serialization
 ***************************************/

func (x *Target) GenerateVcxproj(resources *ResourceBundle) (GeneratedFile, error) {
	root := NewVcxprojBuilder(x, resources).Build()

	content := bytes.Buffer{}
	if err := io.WriteXmlDocument(&content, root); err != nil {
		return GeneratedFile{}, err
	}
	return GeneratedFile{Path: x.ProjectFile(), Content: content.Bytes()}, nil
}
