package cmd

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/io"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

var ErrOutOfDate = errors.New("generated files are out-of-date")

/***************************************
 * File state
 ***************************************/

type FileState byte

const (
	FILESTATE_UPTODATE FileState = iota
	FILESTATE_NEW
	FILESTATE_OUTDATED
	FILESTATE_EDITED
	FILESTATE_STALE
)

func (x FileState) String() string {
	switch x {
	case FILESTATE_UPTODATE:
		return "up-to-date"
	case FILESTATE_NEW:
		return "new"
	case FILESTATE_OUTDATED:
		return "outdated"
	case FILESTATE_EDITED:
		return "edited"
	case FILESTATE_STALE:
		return "stale"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

type fileStatus struct {
	Path     string
	State    FileState
	Modified time.Time
}

func loadManifestIFP(exporter *msvc.Exporter) (*io.Manifest, error) {
	if !io.FileExists(exporter.ManifestFile()) {
		return nil, nil
	}
	return io.LoadManifest(exporter.ManifestFile())
}

// Compares what an export would write with the disk, edited files were changed outside of the exporter
// since the last recorded export and stale files are recorded but not generated anymore
func exporterStatus(exporter *msvc.Exporter) ([]fileStatus, error) {
	files, err := exporter.Generate()
	if err != nil {
		return nil, err
	}
	manifest, err := loadManifestIFP(exporter)
	if err != nil {
		return nil, err
	}

	generated := base.StringSet{}
	result := make([]fileStatus, 0, len(files))
	for _, it := range files {
		path := exporter.ManifestPath(it.Path)
		generated.Append(path)

		status := fileStatus{Path: path}
		switch {
		case !io.FileExists(it.Path):
			status.State = FILESTATE_NEW
		case !io.IsContentDifferent(it.Path, it.Content):
			status.State = FILESTATE_UPTODATE
		default:
			status.State = FILESTATE_OUTDATED
			if manifest != nil {
				if entry, ok := manifest.Find(path); ok {
					if hash, err := io.FileContentHash(it.Path); err == nil && hash != entry.Hash {
						status.State = FILESTATE_EDITED
					}
				}
			}
		}
		if status.State != FILESTATE_NEW {
			if status.Modified, err = io.ModificationTime(it.Path); err != nil {
				return nil, err
			}
		}
		result = append(result, status)
	}

	if manifest != nil {
		for _, entry := range manifest.Entries {
			if generated.Contains(entry.Path) {
				continue
			}
			status := fileStatus{Path: entry.Path, State: FILESTATE_STALE}
			if modTime, err := io.ModificationTime(exporter.ManifestFilename(entry.Path)); err == nil {
				status.Modified = modTime
			}
			result = append(result, status)
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

/***************************************
 * Status
 ***************************************/

type statusFlags struct {
	Exporter string
	Check    bool
}

func newStatusCommand(env *environment) *cobra.Command {
	flags := statusFlags{}
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show which generated files an export would create or modify",
		GroupID: GROUP_GENERATE,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.status(cmd, flags)
		},
	}
	addExporterFlag(cmd, &flags.Exporter)
	cmd.Flags().BoolVar(&flags.Check, "check", false, "fail when any generated file is not up-to-date")
	return cmd
}

func (x *environment) status(cmd *cobra.Command, flags statusFlags) error {
	_, exporters, err := x.loadExporters(flags.Exporter)
	if err != nil {
		return err
	}

	outOfDate := 0
	data := pterm.TableData{{"Exporter", "File", "State", "Modified"}}
	for _, exporter := range exporters {
		files, err := exporterStatus(exporter)
		if err != nil {
			return fmt.Errorf("%v: %w", exporter.Version, err)
		}
		for _, it := range files {
			modified := "-"
			if !it.Modified.IsZero() {
				modified = it.Modified.Format(time.DateTime)
			}
			if it.State != FILESTATE_UPTODATE {
				outOfDate++
			}
			data = append(data, []string{exporter.Version.String(), it.Path, it.State.String(), modified})
		}
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render(); err != nil {
		return err
	}

	if outOfDate > 0 {
		base.LogInfo(LogCommand, "%d generated files are not up-to-date", outOfDate)
		if flags.Check {
			return fmt.Errorf("%w: %d files", ErrOutOfDate, outOfDate)
		}
	}
	return nil
}
