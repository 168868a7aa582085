package msvc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/vsexport/internal/model"
)

func generateTestSolution(t *testing.T, exporter *Exporter) string {
	sln, err := exporter.GenerateSolution()
	require.NoError(t, err)
	assert.Equal(t, exporter.SolutionFile(), sln.Path)
	return string(sln.Content)
}

func TestSolutionHeader(t *testing.T) {
	content := generateTestSolution(t, makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP)))
	assert.True(t, strings.HasPrefix(content,
		"Microsoft Visual Studio Solution File, Format Version 12.00\r\n# Visual Studio 2015\r\n\r\nProject("))
	assert.True(t, strings.HasSuffix(content, "EndGlobal\r\n"))
	assert.Equal(t, strings.Count(content, "\n"), strings.Count(content, "\r\n"))

	project := makeTestProject(model.PROJECT_GUIAPP)
	project.Exporters[0].Type = "VS2019"
	content = generateTestSolution(t, makeTestExporter(t, project))
	assert.Contains(t, content, "# Visual Studio Version 16\r\nVisualStudioVersion = 16.0.28729.10\r\nMinimumVisualStudioVersion = 10.0.40219.1\r\n\r\n")
}

func TestSolutionProjects(t *testing.T) {
	exporter := makePluginExporter(t, model.TARGET_VST3PLUGIN, model.TARGET_AAXPLUGIN)
	content := generateTestSolution(t, exporter)

	shared := findTarget(t, exporter, model.TARGET_SHAREDCODE)
	vst3 := findTarget(t, exporter, model.TARGET_VST3PLUGIN)

	assert.Contains(t, content, `Project("`+VCXPROJ_PROJECT_TYPE_GUID+`") = "Demo (VST3)", "Demo (VST3).vcxproj", "`+vst3.ProjectGuid()+`"`+"\r\n")
	assert.Equal(t, 2, strings.Count(content, "ProjectSection(ProjectDependencies) = postProject"))
	assert.Equal(t, 2, strings.Count(content, "\t\t"+shared.ProjectGuid()+" = "+shared.ProjectGuid()+"\r\n"))

	assert.Contains(t, content, "\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\r\n\t\tDebug|x64 = Debug|x64\r\n\t\tRelease|x64 = Release|x64\r\n")
	assert.Equal(t, 6, strings.Count(content, ".ActiveCfg = "))
	assert.Equal(t, 6, strings.Count(content, ".Build.0 = "))
	assert.Contains(t, content, "\t\t"+vst3.ProjectGuid()+".Release|x64.ActiveCfg = Release|x64\r\n\t\t"+vst3.ProjectGuid()+".Release|x64.Build.0 = Release|x64\r\n")
	assert.Contains(t, content, "\t\tHideSolutionNode = FALSE\r\n")
}

func TestSolutionWithoutSharedCode(t *testing.T) {
	content := generateTestSolution(t, makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP)))
	assert.NotContains(t, content, "ProjectDependencies")
	assert.Contains(t, content, `= "Demo (App)", "Demo (App).vcxproj"`)
}

func TestSolutionFolders(t *testing.T) {
	content := generateTestSolution(t, makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP)))

	folder := func(id, name string) string {
		return `Project("` + SOLUTION_FOLDER_TYPE_GUID + `") = "` + name + `", "` + name + `", "` + GroupGUID(id) + `"` + "\r\n"
	}

	assert.NotContains(t, content, folder("grpRoot", "Demo"))
	assert.NotContains(t, content, folder("grpEmpty", "Empty"))

	assert.Contains(t, content, folder("grpSource", "Source")+
		"\tProjectSection(SolutionItems) = preProject\r\n"+
		"\t\t..\\..\\Source\\Main.cpp = ..\\..\\Source\\Main.cpp\r\n"+
		"\t\t..\\..\\Source\\Main.h = ..\\..\\Source\\Main.h\r\n"+
		"\tEndProjectSection\r\n"+
		"EndProject\r\n"+
		folder("grpPlugin", "Plugin"))
	assert.Contains(t, content, folder("grpDocs", "Docs"))

	sourceAt := strings.Index(content, folder("grpSource", "Source"))
	wrappersAt := strings.Index(content, folder("grpWrappers", "Wrappers"))
	docsAt := strings.Index(content, folder("grpDocs", "Docs"))
	assert.True(t, sourceAt < wrappersAt && wrappersAt < docsAt)

	assert.Contains(t, content,
		"\tGlobalSection(NestedProjects) = preSolution\r\n"+
			"\t\t"+GroupGUID("grpPlugin")+" = "+GroupGUID("grpSource")+"\r\n"+
			"\tEndGlobalSection\r\n"+
			"EndGlobal\r\n")
}

func TestSolutionKeepsRootWithSeveralGroups(t *testing.T) {
	project := makeTestProject(model.PROJECT_GUIAPP)
	project.Groups = append(project.Groups, &model.Item{ID: "grpExtra", Name: "Extra", Children: []*model.Item{
		{ID: "itemExtra", Name: "Extra.txt", File: "Extra.txt"},
	}})

	content := generateTestSolution(t, makeTestExporter(t, project))
	assert.Contains(t, content, `= "Demo", "Demo", "`+GroupGUID("grpRoot")+`"`)
	assert.Contains(t, content, "\t\t"+GroupGUID("grpSource")+" = "+GroupGUID("grpRoot")+"\r\n")
	assert.Contains(t, content, "\t\t..\\..\\Extra.txt = ..\\..\\Extra.txt\r\n")
}
