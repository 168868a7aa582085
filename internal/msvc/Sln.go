package msvc

import (
	"bytes"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Solution document
 ***************************************/

type SlnSolutionGenerator struct {
	Exporter *Exporter

	sln            *base.StructuredFile
	nestedProjects []string
}

func NewSlnSolutionGenerator(exporter *Exporter) *SlnSolutionGenerator {
	return &SlnSolutionGenerator{Exporter: exporter}
}

func (x *Exporter) GenerateSolution() (GeneratedFile, error) {
	content := bytes.Buffer{}
	if err := NewSlnSolutionGenerator(x).GenerateSLN(&content); err != nil {
		return GeneratedFile{}, err
	}
	return GeneratedFile{Path: x.SolutionFile(), Content: content.Bytes()}, nil
}

func (x *SlnSolutionGenerator) GenerateSLN(dst *bytes.Buffer) error {
	x.sln = base.NewStructuredFile(dst, "\t", false)
	x.sln.SetNewLine("\r\n")
	x.nestedProjects = nil

	for _, line := range x.Exporter.Descriptor().SolutionHeader() {
		x.sln.WriteLine(line)
	}
	x.sln.WriteLine("")

	x.projectDependencies()
	x.solutionFolders()
	x.global()

	return x.sln.Err()
}

// Names are quoted verbatim, the solution format has no escaping
func slnProject(typeGuid, name, path, guid string) string {
	return "Project(\"" + typeGuid + "\") = \"" + name + "\", \"" + path + "\", \"" + guid + "\""
}

// Every target except the shared code builds after the shared code
func (x *SlnSolutionGenerator) projectDependencies() {
	project := x.Exporter.Project
	sharedCode := x.Exporter.SharedCodeTarget()

	for _, t := range x.Exporter.Targets {
		x.sln.WriteLine(slnProject(VCXPROJ_PROJECT_TYPE_GUID, project.Name+" ("+t.Name()+")", t.ProjectFileName(), t.ProjectGuid()))

		if sharedCode != nil && !t.IsSharedCode() {
			x.sln.WriteLine("\tProjectSection(ProjectDependencies) = postProject")
			x.sln.WriteLine("\t\t" + sharedCode.ProjectGuid() + " = " + sharedCode.ProjectGuid())
			x.sln.WriteLine("\tEndProjectSection")
		}

		x.sln.WriteLine("EndProject")
	}
}

// A lone root group is skipped, its children become the top-level folders
func (x *SlnSolutionGenerator) solutionFolders() {
	groups := x.Exporter.Project.Groups
	if len(groups) == 1 {
		groups = groups[0].Children
	}
	for _, group := range groups {
		if group.IsGroup() && len(group.Children) > 0 {
			x.solutionFolder(group, "")
		}
	}
}

func (x *SlnSolutionGenerator) solutionFolder(group *model.Item, parentGuid string) {
	base.Assert(func() bool { return group.IsGroup() })
	groupGuid := GroupGUID(group.ID)

	x.sln.WriteLine(slnProject(SOLUTION_FOLDER_TYPE_GUID, group.Name, group.Name, groupGuid))

	hasSubFiles := false
	for _, child := range group.Children {
		if !child.IsFile() {
			continue
		}
		if !hasSubFiles {
			x.sln.WriteLine("\tProjectSection(SolutionItems) = preProject")
			hasSubFiles = true
		}
		path := x.Exporter.Rebaser.ToBuildTarget(MakeRelativePath(child.File, PATHROOT_PROJECT_FOLDER)).ToWindowsStyle()
		x.sln.WriteLine("\t\t" + path + " = " + path)
	}
	if hasSubFiles {
		x.sln.WriteLine("\tEndProjectSection")
	}

	x.sln.WriteLine("EndProject")

	for _, child := range group.Children {
		if child.IsGroup() {
			x.solutionFolder(child, groupGuid)
		}
	}

	if len(parentGuid) > 0 {
		x.nestedProjects = append(x.nestedProjects, groupGuid+" = "+parentGuid)
	}
}

func (x *SlnSolutionGenerator) global() {
	configs := x.Exporter.Configs

	x.sln.WriteLine("Global")

	x.sln.WriteLine("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution")
	for _, c := range configs {
		x.sln.WriteLine("\t\t" + c.ConfigName() + " = " + c.ConfigName())
	}
	x.sln.WriteLine("\tEndGlobalSection")

	x.sln.WriteLine("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution")
	for _, t := range x.Exporter.Targets {
		for _, c := range configs {
			x.sln.WriteLine("\t\t" + t.ProjectGuid() + "." + c.ConfigName() + ".ActiveCfg = " + c.ConfigName())
			x.sln.WriteLine("\t\t" + t.ProjectGuid() + "." + c.ConfigName() + ".Build.0 = " + c.ConfigName())
		}
	}
	x.sln.WriteLine("\tEndGlobalSection")

	x.sln.WriteLine("\tGlobalSection(SolutionProperties) = preSolution")
	x.sln.WriteLine("\t\tHideSolutionNode = FALSE")
	x.sln.WriteLine("\tEndGlobalSection")

	if len(x.nestedProjects) > 0 {
		x.sln.WriteLine("\tGlobalSection(NestedProjects) = preSolution")
		for _, it := range x.nestedProjects {
			x.sln.WriteLine("\t\t" + it)
		}
		x.sln.WriteLine("\tEndGlobalSection")
	}

	x.sln.WriteLine("EndGlobal")
}
