package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
)

/***************************************
 * Pack
 ***************************************/

type packFlags struct {
	exportFlags
	Output string
}

func newPackCommand(env *environment) *cobra.Command {
	flags := packFlags{}
	cmd := &cobra.Command{
		Use:     "pack",
		Short:   "Export, then archive every generated build folder (.zip, .tar.gz, .tar.zst, .tar.lz4)",
		GroupID: GROUP_GENERATE,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, results, err := env.export(cmd, flags.exportFlags)
			if err != nil {
				return err
			}

			output := flags.Output
			if len(output) == 0 {
				output = project.Name + "-vs.zip"
			}

			folders := make([]string, len(results))
			for i, it := range results {
				folders[i] = it.Exporter.TargetFolder
			}
			if err := io.ArchiveFiles(output, folders...); err != nil {
				return fmt.Errorf("%s: %w", project.Name, err)
			}

			base.LogClaim(LogCommand, "%s: packed %d build folders in %q", project.Name, len(folders), output)
			return nil
		},
	}

	addExporterFlag(cmd, &flags.Exporter)
	cmd.Flags().StringVar(&flags.Compression, "compression", "", "manifest compression, lz4 or zstd (default from configuration)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "archive to create, the format follows its extension (default is <project>-vs.zip)")
	return cmd
}
