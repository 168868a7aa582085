package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

var (
	ErrProjectNotFound    = errors.New("no project file found in the working directory")
	ErrNoExporterSelected = errors.New("no Visual Studio exporter selected")
)

var projectFilePatterns = []string{
	"*.jucer.json",
	"*.jucer.toml",
	"*.jucer.yaml",
	"*.jucer.yml",
}

/***************************************
 * Project discovery
 ***************************************/

func (x *environment) projectFilename() (string, error) {
	if len(x.Flags.ProjectFile) > 0 {
		return x.Flags.ProjectFile, nil
	}
	for _, pattern := range projectFilePatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", ErrProjectNotFound
}

func (x *environment) loadProject() (string, *model.Project, error) {
	filename, err := x.projectFilename()
	if err != nil {
		return "", nil, err
	}
	project, err := model.LoadProject(filename)
	if err != nil {
		return filename, nil, err
	}
	return filename, project, nil
}

// Filter from the command line wins over the configured one
func (x *environment) exporterFilter(flag string) string {
	if len(flag) > 0 {
		return flag
	}
	return x.Config.Exporter
}

func (x *environment) loadExporters(filter string) (*model.Project, []*msvc.Exporter, error) {
	_, project, err := x.loadProject()
	if err != nil {
		return nil, nil, err
	}
	exporters, err := selectExporters(project, x.exporterFilter(filter))
	return project, exporters, err
}

func addExporterFlag(cmd *cobra.Command, filter *string) {
	cmd.Flags().StringVarP(filter, "exporter", "e", "", "comma separated Visual Studio versions to process (default is every exporter of the project)")
}

/***************************************
 * Exporter selection
 ***************************************/

// Exporters of other IDEs are skipped, an empty filter selects every Visual Studio exporter
func selectExporters(project *model.Project, filter string) ([]*msvc.Exporter, error) {
	var wanted []msvc.VisualStudioVersion
	for _, it := range base.SplitAndTrim(filter, ",;") {
		var version msvc.VisualStudioVersion
		if err := version.Set(it); err != nil {
			return nil, fmt.Errorf("invalid exporter filter %q: %w", it, err)
		}
		wanted = append(wanted, version)
	}

	var result []*msvc.Exporter
	for _, settings := range project.Exporters {
		var version msvc.VisualStudioVersion
		if err := version.Set(settings.Type); err != nil {
			base.LogVerbose(LogCommand, "%s: ignoring exporter %q", project.Name, settings.Type)
			continue
		}
		if len(wanted) > 0 && !base.Contains(wanted, version) {
			continue
		}

		exporter, err := msvc.NewExporter(project, settings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", project.Name, err)
		}
		result = append(result, exporter)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", project.Name, ErrNoExporterSelected)
	}
	return result, nil
}
