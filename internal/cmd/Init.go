package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
	"github.com/poppolopoppo/vsexport/internal/model"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

/***************************************
 * Init
 ***************************************/

type initFlags struct {
	Type          string
	Format        string
	Exporter      string
	PluginFormats []string
	Company       string
	Folder        string
	Force         bool
}

// Short random identifiers, in the spirit of the ones written by the project editor
func newProjectUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func newProjectTemplate(name string, flags initFlags) (*model.Project, error) {
	project := &model.Project{
		Name:    name,
		UID:     newProjectUID(),
		Version: "1.0.0",
		Company: flags.Company,
	}
	if err := project.Type.Set(flags.Type); err != nil {
		return nil, fmt.Errorf("invalid project type %q: %w", flags.Type, err)
	}

	for _, it := range flags.PluginFormats {
		var format model.TargetType
		if err := format.Set(it); err != nil {
			return nil, fmt.Errorf("invalid plugin format %q: %w", it, err)
		}
		if !format.IsPluginFormat() {
			return nil, fmt.Errorf("%v is not a plugin format", format)
		}
		project.PluginFormats = base.AppendUniq(project.PluginFormats, format)
	}
	if project.Type.IsAudioPlugin() && len(project.PluginFormats) == 0 {
		project.PluginFormats = []model.TargetType{model.TARGET_VST3PLUGIN}
	}

	var version msvc.VisualStudioVersion
	if err := version.Set(flags.Exporter); err != nil {
		return nil, fmt.Errorf("invalid exporter %q: %w", flags.Exporter, err)
	}
	project.Exporters = []*model.Exporter{{
		Type:     version.String(),
		Settings: model.Settings{},
		Configurations: []*model.Configuration{
			{Name: "Debug", Settings: model.Settings{"isDebug": true}},
			{Name: "Release", Settings: model.Settings{"isDebug": false}},
		},
	}}

	project.Groups = []*model.Item{{
		ID:   newProjectUID(),
		Name: name,
		Children: []*model.Item{{
			ID:   newProjectUID(),
			Name: "Source",
			Children: []*model.Item{{
				ID:      newProjectUID(),
				Name:    "Main.cpp",
				File:    "Source/Main.cpp",
				Compile: true,
			}},
		}},
	}}
	return project, project.Validate()
}

func newInitCommand(env *environment) *cobra.Command {
	flags := initFlags{}
	cmd := &cobra.Command{
		Use:     "init <name>",
		Short:   "Create a new project file with one Visual Studio exporter",
		GroupID: GROUP_PROJECT,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := newProjectTemplate(args[0], flags)
			if err != nil {
				return err
			}

			var format model.ProjectFormat
			if err := format.Set(flags.Format); err != nil {
				return fmt.Errorf("invalid project format %q: %w", flags.Format, err)
			}

			filename := filepath.Join(flags.Folder, project.Name+".jucer"+format.Extension())
			if io.FileExists(filename) && !flags.Force {
				return fmt.Errorf("%q already exists, use --force to overwrite it", filename)
			}
			if err := model.SaveProject(filename, project); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", model.PROJECT_GUIAPP.String(), "project type")
	cmd.Flags().StringVar(&flags.Format, "format", model.PROJECTFORMAT_JSON.String(), "project file format, json, toml or yaml")
	cmd.Flags().StringVarP(&flags.Exporter, "exporter", "e", msvc.VS2019.String(), "Visual Studio version of the exporter")
	cmd.Flags().StringSliceVar(&flags.PluginFormats, "plugin-formats", nil, "plugin formats of an audio plug-in (default is VST3)")
	cmd.Flags().StringVar(&flags.Company, "company", "", "company name written in the version resources")
	cmd.Flags().StringVar(&flags.Folder, "folder", ".", "folder receiving the project file")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "overwrite an existing project file")
	return cmd
}
