package msvc

import (
	"fmt"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

/***************************************
 * VisualStudioVersion
 ***************************************/

type VisualStudioVersion byte

const (
	VS2010 VisualStudioVersion = iota
	VS2012
	VS2013
	VS2015
	VS2017
	VS2019
)

func GetVisualStudioVersions() []VisualStudioVersion {
	return []VisualStudioVersion{
		VS2010,
		VS2012,
		VS2013,
		VS2015,
		VS2017,
		VS2019,
	}
}

// Everything that differs between two generations of the toolchain
type VersionDescriptor struct {
	Name                string
	Key                 string
	FolderName          string
	VersionNumber       int
	ToolsVersion        string
	DefaultToolset      string
	Toolsets            []string
	SolutionFormat      string
	SolutionComment     string
	FullVersion         string
	ToolsetInAllGroups  bool
	WindowsTargetSdk    bool
	FiltersToolsVersion string
}

var visualStudioVersions = []VersionDescriptor{
	VS2010: {
		Name:                "Visual Studio 2010",
		Key:                 "VS2010",
		FolderName:          "VisualStudio2010",
		VersionNumber:       10,
		ToolsVersion:        "4.0",
		DefaultToolset:      "Windows7.1SDK",
		Toolsets:            []string{"v100", "v100_xp", "Windows7.1SDK", "CTP_Nov2013"},
		SolutionFormat:      "11.00",
		SolutionComment:     "# Visual Studio 2010",
		FiltersToolsVersion: "4.0",
	},
	VS2012: {
		Name:                "Visual Studio 2012",
		Key:                 "VS2012",
		FolderName:          "VisualStudio2012",
		VersionNumber:       11,
		ToolsVersion:        "4.0",
		DefaultToolset:      "v110",
		Toolsets:            []string{"v110", "v110_xp", "Windows7.1SDK", "CTP_Nov2013"},
		SolutionFormat:      "12.00",
		SolutionComment:     "# Visual Studio 2012",
		ToolsetInAllGroups:  true,
		FiltersToolsVersion: "4.0",
	},
	VS2013: {
		Name:                "Visual Studio 2013",
		Key:                 "VS2013",
		FolderName:          "VisualStudio2013",
		VersionNumber:       12,
		ToolsVersion:        "12.0",
		DefaultToolset:      "v120",
		Toolsets:            []string{"v120", "v120_xp", "Windows7.1SDK", "CTP_Nov2013"},
		SolutionFormat:      "12.00",
		SolutionComment:     "# Visual Studio 2013",
		ToolsetInAllGroups:  true,
		FiltersToolsVersion: "4.0",
	},
	VS2015: {
		Name:                "Visual Studio 2015",
		Key:                 "VS2015",
		FolderName:          "VisualStudio2015",
		VersionNumber:       14,
		ToolsVersion:        "14.0",
		DefaultToolset:      "v140",
		Toolsets:            []string{"v140", "v140_xp", "CTP_Nov2013"},
		SolutionFormat:      "12.00",
		SolutionComment:     "# Visual Studio 2015",
		ToolsetInAllGroups:  true,
		WindowsTargetSdk:    true,
		FiltersToolsVersion: "4.0",
	},
	VS2017: {
		Name:                "Visual Studio 2017",
		Key:                 "VS2017",
		FolderName:          "VisualStudio2017",
		VersionNumber:       15,
		ToolsVersion:        "15.0",
		DefaultToolset:      "v141",
		Toolsets:            []string{"v140", "v140_xp", "v141", "v141_xp"},
		SolutionFormat:      "12.00",
		SolutionComment:     "# Visual Studio 15",
		FullVersion:         "15.0.28307.645",
		ToolsetInAllGroups:  true,
		WindowsTargetSdk:    true,
		FiltersToolsVersion: "4.0",
	},
	VS2019: {
		Name:                "Visual Studio 2019",
		Key:                 "VS2019",
		FolderName:          "VisualStudio2019",
		VersionNumber:       16,
		ToolsVersion:        "16.0",
		DefaultToolset:      "v142",
		Toolsets:            []string{"v140", "v140_xp", "v141", "v141_xp", "v142"},
		SolutionFormat:      "12.00",
		SolutionComment:     "# Visual Studio Version 16",
		FullVersion:         "16.0.28729.10",
		ToolsetInAllGroups:  true,
		WindowsTargetSdk:    true,
		FiltersToolsVersion: "4.0",
	},
}

func (x VisualStudioVersion) Descriptor() *VersionDescriptor {
	if int(x) >= len(visualStudioVersions) {
		base.UnexpectedValue(x)
	}
	return &visualStudioVersions[x]
}
func (x VisualStudioVersion) String() string {
	return x.Descriptor().Key
}
func (x *VisualStudioVersion) Set(in string) error {
	for _, it := range GetVisualStudioVersions() {
		desc := it.Descriptor()
		if strings.EqualFold(in, desc.Key) || strings.EqualFold(in, desc.Name) || in == fmt.Sprint(desc.VersionNumber) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x VisualStudioVersion) MarshalText() ([]byte, error) {
	return base.UnsafeBytesFromString(x.String()), nil
}
func (x *VisualStudioVersion) UnmarshalText(data []byte) error {
	return x.Set(base.UnsafeStringFromBytes(data))
}

func (x *VersionDescriptor) IsValidToolset(toolset string) bool {
	return base.Contains(x.Toolsets, toolset)
}

// Header lines of the solution document, without the trailing blank line
func (x *VersionDescriptor) SolutionHeader() []string {
	lines := []string{"Microsoft Visual Studio Solution File, Format Version " + x.SolutionFormat}
	if len(x.SolutionComment) > 0 {
		lines = append(lines, x.SolutionComment)
	}
	if len(x.FullVersion) > 0 {
		lines = append(lines,
			"VisualStudioVersion = "+x.FullVersion,
			"MinimumVisualStudioVersion = 10.0.40219.1")
	}
	return lines
}
