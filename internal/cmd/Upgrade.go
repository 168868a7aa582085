package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
)

func newUpgradeCommand(env *environment) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "upgrade",
		Short:   "Migrate legacy exporter settings and save the project",
		GroupID: GROUP_PROJECT,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, project, err := env.loadProject()
			if err != nil {
				return err
			}

			if !project.UpgradeSettings() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: already up-to-date\n", filename)
				return nil
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: would be upgraded\n", filename)
				return nil
			}

			if err := model.SaveProject(filename, project); err != nil {
				return err
			}
			base.LogClaim(LogCommand, "%s: upgraded legacy settings", filename)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "only report whether the project needs an upgrade")
	return cmd
}
