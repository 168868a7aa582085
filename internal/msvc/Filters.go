package msvc

import (
	"bytes"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
	"github.com/poppolopoppo/vsexport/internal/model"
)

/***************************************
 * Filters document
 ***************************************/

// Mirrors the project group tree in the IDE, every listed file is tagged with its group path
func (x *Target) BuildFilters() *io.XmlElement {
	root := io.NewXmlElement("Project",
		attr("ToolsVersion", x.owner.Descriptor().FiltersToolsVersion),
		attr("xmlns", MSBUILD_XMLNS))

	usedGroups := base.StringSet{}
	files := root.Child("ItemGroup")

	model.WalkItems(x.owner.Project.Groups, func(item *model.Item, parents []*model.Item) error {
		var tag string
		switch {
		case !item.IsFile():
			return nil
		case x.ShouldCompileFile(item):
			tag = "ClCompile"
		case x.ShouldIncludeHeader(item):
			tag = "ClInclude"
		default:
			return nil
		}

		file := files.Child(tag, attr("Include", x.ItemFilePath(item).ToWindowsStyle()))
		if len(parents) > 0 {
			file.Element("Filter", filterPath(parents))
			for _, group := range parents {
				usedGroups.AppendUniq(group.ID)
			}
		}
		return nil
	})

	if x.owner.HasResourceFile() {
		resources := root.Child("ItemGroup")
		resources.Child("ResourceCompile", attr("Include", prependDot(RESOURCES_FILENAME)))
	}

	filters := root.Child("ItemGroup")
	model.WalkItems(x.owner.Project.Groups, func(item *model.Item, parents []*model.Item) error {
		if item.IsGroup() && usedGroups.Contains(item.ID) {
			filter := filters.Child("Filter", attr("Include", filterPath(append(parents[:len(parents):len(parents)], item))))
			filter.Element("UniqueIdentifier", GroupGUID(item.ID))
		}
		return nil
	})

	return root
}

func filterPath(groups []*model.Item) string {
	names := make([]string, len(groups))
	for i, it := range groups {
		names[i] = it.Name
	}
	return strings.Join(names, "\\")
}

func (x *Target) GenerateFilters() (GeneratedFile, error) {
	content := bytes.Buffer{}
	if err := io.WriteXmlDocument(&content, x.BuildFilters()); err != nil {
		return GeneratedFile{}, err
	}
	return GeneratedFile{Path: x.FiltersFile(), Content: content.Bytes()}, nil
}
