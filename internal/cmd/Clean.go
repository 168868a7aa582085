package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

/***************************************
 * Clean
 ***************************************/

type cleanFlags struct {
	Exporter string
	DryRun   bool
	Force    bool
}

func newCleanCommand(env *environment) *cobra.Command {
	flags := cleanFlags{}
	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Delete the files recorded by the output manifest of every exporter",
		GroupID: GROUP_GENERATE,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, exporters, err := env.loadExporters(flags.Exporter)
			if err != nil {
				return err
			}
			for _, exporter := range exporters {
				removed, err := cleanExporter(exporter, flags)
				if err != nil {
					return fmt.Errorf("%v: %w", exporter.Version, err)
				}
				for _, it := range removed {
					if flags.DryRun {
						fmt.Fprintf(cmd.OutOrStdout(), "%v: would remove %s\n", exporter.Version, it)
					}
				}
			}
			return nil
		},
	}
	addExporterFlag(cmd, &flags.Exporter)
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "list the files which would be removed")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "also remove files edited since the last export")
	return cmd
}

// Edited outputs are kept unless forced, the manifest goes away with the last tracked file
func cleanExporter(exporter *msvc.Exporter, flags cleanFlags) (removed []string, err error) {
	manifest, err := loadManifestIFP(exporter)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		base.LogWarning(LogCommand, "%v: no manifest found in %q, nothing to clean", exporter.Version, exporter.TargetFolder)
		return nil, nil
	}

	if !flags.DryRun {
		var lock *io.DirectoryLock
		if lock, err = io.LockDirectory(exporter.TargetFolder); err != nil {
			return nil, err
		}
		defer func() {
			if unlockErr := lock.Unlock(); err == nil {
				err = unlockErr
			}
		}()
	}

	kept := 0
	for _, entry := range manifest.Entries {
		filename := exporter.ManifestFilename(entry.Path)
		if !io.FileExists(filename) {
			continue
		}
		if !flags.Force {
			if hash, err := io.FileContentHash(filename); err != nil {
				return removed, err
			} else if hash != entry.Hash {
				base.LogWarning(LogCommand, "%v: keeping %q which was edited since the last export", exporter.Version, entry.Path)
				kept++
				continue
			}
		}

		removed = append(removed, filename)
		if flags.DryRun {
			continue
		}
		if err := os.Remove(filename); err != nil {
			return removed, err
		}
		base.LogVerbose(LogCommand, "%v: removed %q", exporter.Version, filename)
	}

	if kept == 0 && !flags.DryRun {
		if err := os.Remove(exporter.ManifestFile()); err != nil {
			return removed, err
		}
	}

	base.LogClaim(LogCommand, "%v: %d files removed, %d kept in %q", exporter.Version, len(removed), kept, exporter.TargetFolder)
	return removed, nil
}
