package msvc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/vsexport/internal/model"
)

const testProjectFolder = "/work/Demo"

func makeTestGroups() []*model.Item {
	return []*model.Item{
		{ID: "grpRoot", Name: "Demo", Children: []*model.Item{
			{ID: "grpSource", Name: "Source", Children: []*model.Item{
				{ID: "itemMain", Name: "Main.cpp", File: "Source/Main.cpp", Compile: true},
				{ID: "itemMainH", Name: "Main.h", File: "Source/Main.h"},
				{ID: "grpPlugin", Name: "Plugin", Children: []*model.Item{
					{ID: "itemProcessor", Name: "Processor.cpp", File: "Source/Plugin/Processor.cpp", Compile: true},
					{ID: "itemNotCompiled", Name: "Disabled.cpp", File: "Source/Plugin/Disabled.cpp"},
				}},
			}},
			{ID: "grpWrappers", Name: "Wrappers", Children: []*model.Item{
				{ID: "itemVST3", Name: "juce_audio_plugin_client_VST3.cpp", File: "Wrappers/juce_audio_plugin_client_VST3.cpp", Compile: true},
				{ID: "itemAAX", Name: "juce_audio_plugin_client_AAX.cpp", File: "Wrappers/juce_audio_plugin_client_AAX.cpp", Compile: true},
				{ID: "itemRTAS", Name: "juce_audio_plugin_client_RTAS_1.cpp", File: "Wrappers/juce_audio_plugin_client_RTAS_1.cpp", Compile: true},
			}},
			{ID: "grpDocs", Name: "Docs", Children: []*model.Item{
				{ID: "itemReadMe", Name: "ReadMe.txt", File: "Docs/ReadMe.txt"},
			}},
			{ID: "grpEmpty", Name: "Empty"},
		}},
	}
}

func makeTestProject(projectType model.ProjectType, formats ...model.TargetType) *model.Project {
	return &model.Project{
		Name:          "Demo",
		UID:           "dEm0U1d",
		Version:       "1.2.3",
		Company:       "Acme \"Audio\"",
		Type:          projectType,
		PluginFormats: formats,
		Defines:       "A WIN32",
		Modules: []*model.Module{
			{ID: "juce_core", Path: "Modules/juce_core", Defines: "A=1 B", WindowsLibs: []string{"winmm"}},
		},
		Groups: makeTestGroups(),
		Exporters: []*model.Exporter{{
			Type:     "VS2015",
			Settings: model.Settings{},
			Configurations: []*model.Configuration{
				{Name: "Debug", Settings: model.Settings{}},
				{Name: "Release", Settings: model.Settings{}},
			},
		}},
		Folder: testProjectFolder,
	}
}

func makeTestExporter(t *testing.T, project *model.Project) *Exporter {
	exporter, err := NewExporter(project, project.Exporters[0])
	require.NoError(t, err)
	return exporter
}

func makePluginExporter(t *testing.T, formats ...model.TargetType) *Exporter {
	return makeTestExporter(t, makeTestProject(model.PROJECT_AUDIOPLUGIN, formats...))
}

func findConfig(t *testing.T, exporter *Exporter, name string) *BuildConfig {
	for _, it := range exporter.Configs {
		if it.Name == name {
			return it
		}
	}
	require.FailNow(t, "configuration not found", name)
	return nil
}

func findTarget(t *testing.T, exporter *Exporter, targetType model.TargetType) *Target {
	target := exporter.FindTarget(targetType)
	require.NotNil(t, target, "target %v not found", targetType)
	return target
}
