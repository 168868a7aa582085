package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

/***************************************
 * Export
 ***************************************/

type exportFlags struct {
	Exporter    string
	DryRun      bool
	NoManifest  bool
	Compression string
}

type exportResult struct {
	Exporter *msvc.Exporter
	Result   msvc.CreateResult
}

func newExportCommand(env *environment) *cobra.Command {
	flags := exportFlags{}
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Generate the solution, projects and resources of every Visual Studio exporter",
		GroupID: GROUP_GENERATE,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, results, err := env.export(cmd, flags)
			if err != nil {
				return err
			}
			if flags.DryRun {
				for _, it := range results {
					for _, filename := range it.Result.Written {
						fmt.Fprintf(cmd.OutOrStdout(), "%v: would write %s\n", it.Exporter.Version, filename)
					}
				}
			}
			return nil
		},
	}

	addExporterFlag(cmd, &flags.Exporter)
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "list the files which would change without writing anything")
	cmd.Flags().BoolVar(&flags.NoManifest, "no-manifest", false, "do not record generated files in the output manifest")
	cmd.Flags().StringVar(&flags.Compression, "compression", "", "manifest compression, lz4 or zstd (default from configuration)")
	return cmd
}

func (x *environment) createOptions(flags exportFlags) (options msvc.CreateOptions, err error) {
	options.DryRun = flags.DryRun
	options.WriteManifest = x.Config.Manifest.Enabled && !flags.NoManifest

	if len(flags.Compression) > 0 {
		if err = options.ManifestCompression.Set(flags.Compression); err != nil {
			return options, fmt.Errorf("invalid manifest compression %q: %w", flags.Compression, err)
		}
	} else if options.ManifestCompression, err = x.Config.ManifestCompression(); err != nil {
		return options, err
	}
	return options, nil
}

// Exporters are processed one after the other, each one generates its documents concurrently
func (x *environment) export(cmd *cobra.Command, flags exportFlags) (*model.Project, []exportResult, error) {
	options, err := x.createOptions(flags)
	if err != nil {
		return nil, nil, err
	}

	project, exporters, err := x.loadExporters(flags.Exporter)
	if err != nil {
		return nil, nil, err
	}

	results := make([]exportResult, 0, len(exporters))
	for _, exporter := range exporters {
		base.LogVerbose(LogCommand, "%s: exporting %v to %q", project.Name, exporter.Version, exporter.TargetFolder)

		result, err := exporter.Create(options)
		if err != nil {
			return project, results, fmt.Errorf("%s: %w", project.Name, err)
		}
		results = append(results, exportResult{Exporter: exporter, Result: result})
	}
	return project, results, nil
}
