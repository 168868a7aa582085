package msvc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/vsexport/internal/model"
)

func TestFiltersMirrorGroupTree(t *testing.T) {
	exporter := makePluginExporter(t, model.TARGET_VST3PLUGIN)
	root := findTarget(t, exporter, model.TARGET_SHAREDCODE).BuildFilters()

	version, _ := root.GetAttr("ToolsVersion")
	assert.Equal(t, "4.0", version)

	groups := root.ChildrenNamed("ItemGroup")
	require.Len(t, groups, 3)

	files := groups[0]
	assert.Equal(t, []string{"ClCompile", "ClInclude", "ClCompile"}, childNames(files))
	assert.Equal(t, `Demo\Source`, childText(files.Children[0], "Filter"))
	assert.Equal(t, `Demo\Source`, childText(files.Children[1], "Filter"))
	assert.Equal(t, `Demo\Source\Plugin`, childText(files.Children[2], "Filter"))
	include, _ := files.Children[2].GetAttr("Include")
	assert.Equal(t, `..\..\Source\Plugin\Processor.cpp`, include)

	include, _ = groups[1].FindChild("ResourceCompile").GetAttr("Include")
	assert.Equal(t, `.\resources.rc`, include)

	filters := groups[2]
	var paths []string
	for _, it := range filters.Children {
		path, _ := it.GetAttr("Include")
		paths = append(paths, path)
	}
	assert.Equal(t, []string{`Demo`, `Demo\Source`, `Demo\Source\Plugin`}, paths)
	assert.Equal(t, GroupGUID("grpPlugin"), childText(filters.Children[2], "UniqueIdentifier"))
}

func TestFiltersOnlyListTargetFiles(t *testing.T) {
	exporter := makePluginExporter(t, model.TARGET_VST3PLUGIN)
	root := findTarget(t, exporter, model.TARGET_VST3PLUGIN).BuildFilters()

	groups := root.ChildrenNamed("ItemGroup")
	require.Len(t, groups, 3)
	require.Len(t, groups[0].Children, 1)
	assert.Equal(t, `Demo\Wrappers`, childText(groups[0].Children[0], "Filter"))
	assert.Len(t, groups[2].Children, 2)
}

func TestFiltersForStaticLibrary(t *testing.T) {
	exporter := makeTestExporter(t, makeTestProject(model.PROJECT_STATICLIBRARY))
	root := exporter.Targets[0].BuildFilters()
	assert.Len(t, root.ChildrenNamed("ItemGroup"), 2)
}

func TestGenerateFilters(t *testing.T) {
	exporter := makeTestExporter(t, makeTestProject(model.PROJECT_GUIAPP))
	filters, err := exporter.Targets[0].GenerateFilters()
	require.NoError(t, err)

	assert.Equal(t, exporter.Targets[0].FiltersFile(), filters.Path)
	content := string(filters.Content)
	assert.Contains(t, content, "<UniqueIdentifier>"+GroupGUID("grpSource")+"</UniqueIdentifier>")
	assert.NotContains(t, content, GroupGUID("grpDocs"))
	assert.NotContains(t, content, GroupGUID("grpEmpty"))
	assert.Equal(t, strings.Count(content, "\n"), strings.Count(content, "\r\n"))
}
