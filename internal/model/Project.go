package model

import (
	"fmt"
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

var LogModel = base.NewLogCategory("Model")

/***************************************
 * Project
 ***************************************/

type Icons struct {
	Small string `json:"small,omitempty" toml:"small,omitempty" yaml:"small,omitempty"`
	Big   string `json:"big,omitempty" toml:"big,omitempty" yaml:"big,omitempty"`
}

type Module struct {
	ID           string   `json:"id" toml:"id" yaml:"id"`
	Path         string   `json:"path" toml:"path" yaml:"path"`
	Defines      string   `json:"defines,omitempty" toml:"defines,omitempty" yaml:"defines,omitempty"`
	WindowsLibs  []string `json:"windowsLibs,omitempty" toml:"windowsLibs,omitempty" yaml:"windowsLibs,omitempty"`
	SearchPaths  []string `json:"searchPaths,omitempty" toml:"searchPaths,omitempty" yaml:"searchPaths,omitempty"`
	HasLibraries bool     `json:"hasLibraries,omitempty" toml:"hasLibraries,omitempty" yaml:"hasLibraries,omitempty"`
}

type Configuration struct {
	Name     string   `json:"name" toml:"name" yaml:"name"`
	Settings Settings `json:"settings,omitempty" toml:"settings,omitempty" yaml:"settings,omitempty"`
}

// Debug flag defaults to the configuration name mentioning debug
func (x *Configuration) IsDebug() bool {
	if debug, ok := x.Settings.GetBool("isDebug"); ok {
		return debug
	}
	return strings.Contains(strings.ToLower(x.Name), "debug")
}

type Exporter struct {
	Type           string           `json:"type" toml:"type" yaml:"type"`
	Settings       Settings         `json:"settings,omitempty" toml:"settings,omitempty" yaml:"settings,omitempty"`
	Configurations []*Configuration `json:"configurations" toml:"configurations" yaml:"configurations"`
}

type Project struct {
	Name            string                         `json:"name" toml:"name" yaml:"name"`
	UID             string                         `json:"uid" toml:"uid" yaml:"uid"`
	Version         string                         `json:"version,omitempty" toml:"version,omitempty" yaml:"version,omitempty"`
	Company         string                         `json:"company,omitempty" toml:"company,omitempty" yaml:"company,omitempty"`
	Type            ProjectType                    `json:"projectType" toml:"projectType" yaml:"projectType"`
	PluginFormats   []TargetType                   `json:"pluginFormats,omitempty" toml:"pluginFormats,omitempty" yaml:"pluginFormats,omitempty"`
	Defines         string                         `json:"defines,omitempty" toml:"defines,omitempty" yaml:"defines,omitempty"`
	Icons           Icons                          `json:"icons,omitempty" toml:"icons,omitempty" yaml:"icons,omitempty"`
	Modules         []*Module                      `json:"modules,omitempty" toml:"modules,omitempty" yaml:"modules,omitempty"`
	Groups          []*Item                        `json:"groups,omitempty" toml:"groups,omitempty" yaml:"groups,omitempty"`
	DependencyPaths map[TargetOS]map[string]string `json:"dependencyPaths,omitempty" toml:"dependencyPaths,omitempty" yaml:"dependencyPaths,omitempty"`
	Exporters       []*Exporter                    `json:"exporters" toml:"exporters" yaml:"exporters"`

	// absolute path of the folder containing the project file
	Folder string `json:"-" toml:"-" yaml:"-"`
}

func (x *Project) Title() string {
	return x.Name
}

func (x *Project) HasPluginFormat(target TargetType) bool {
	return base.Contains(x.PluginFormats, target)
}

// Stored SDK root for the given OS, empty when unknown
func (x *Project) DependencyPath(os TargetOS, key string) string {
	if paths, ok := x.DependencyPaths[os]; ok {
		return strings.TrimSpace(paths[key])
	}
	return ""
}

func (x *Project) FindExporter(exporterType string) *Exporter {
	for _, it := range x.Exporters {
		if strings.EqualFold(it.Type, exporterType) {
			return it
		}
	}
	return nil
}

// Restores invariants after decoding, settings maps are never nil
func (x *Project) PostLoad() {
	for _, exporter := range x.Exporters {
		if exporter.Settings == nil {
			exporter.Settings = Settings{}
		}
		for _, config := range exporter.Configurations {
			if config.Settings == nil {
				config.Settings = Settings{}
			}
		}
	}
}

func (x *Project) Validate() error {
	if len(strings.TrimSpace(x.Name)) == 0 {
		return fmt.Errorf("project has no name")
	}
	if len(strings.TrimSpace(x.UID)) == 0 {
		return fmt.Errorf("project %q has no uid", x.Name)
	}

	ids := base.StringSet{}
	err := WalkItems(x.Groups, func(item *Item, _ []*Item) error {
		if len(item.ID) == 0 {
			return fmt.Errorf("item %q has no id", item.Name)
		}
		if !ids.AppendUniq(item.ID) {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		if hint := item.Target; len(hint) > 0 {
			var target TargetType
			if err := target.Set(hint); err != nil {
				return fmt.Errorf("item %q: invalid target: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("project %q: %w", x.Name, err)
	}

	for _, exporter := range x.Exporters {
		names := base.StringSet{}
		for _, config := range exporter.Configurations {
			if !names.AppendUniq(config.Name) {
				return fmt.Errorf("project %q: exporter %q declares configuration %q twice", x.Name, exporter.Type, config.Name)
			}
		}
	}
	return nil
}
