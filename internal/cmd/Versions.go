package cmd

import (
	"fmt"
	goio "io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/hal"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

/***************************************
 * Versions
 ***************************************/

func newVersionsCommand(env *environment) *cobra.Command {
	var sdks bool
	cmd := &cobra.Command{
		Use:     "versions",
		Short:   "List the supported Visual Studio versions",
		GroupID: GROUP_INFO,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sdks {
				return renderWindowsSDKs(cmd.OutOrStdout(), env.Config.WindowsKits)
			}

			data := pterm.TableData{{"Key", "Name", "Folder", "Tools", "Toolset", "Solution", "Available toolsets"}}
			for _, it := range msvc.GetVisualStudioVersions() {
				desc := it.Descriptor()
				data = append(data, []string{
					desc.Key, desc.Name, desc.FolderName, desc.ToolsVersion,
					desc.DefaultToolset, desc.SolutionFormat, strings.Join(desc.Toolsets, ", "),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
		},
	}
	cmd.Flags().BoolVar(&sdks, "sdks", false, "list the Windows SDKs installed in the configured Windows Kits folder instead")
	return cmd
}

func renderWindowsSDKs(dst goio.Writer, kitsRoot string) error {
	if len(kitsRoot) == 0 {
		return fmt.Errorf("no Windows Kits folder on this host, set windows_kits in the configuration")
	}

	sdks, err := hal.FindWindowsSDKs(kitsRoot)
	if err != nil {
		return err
	}
	if len(sdks) == 0 {
		base.LogWarning(LogCommand, "no Windows SDK found in %q", kitsRoot)
		return nil
	}

	data := pterm.TableData{{"Version", "Kit", "Folder", "Resource compiler"}}
	for _, it := range sdks {
		data = append(data, []string{it.Version, it.MajorVer, it.RootDir, fmt.Sprint(it.HasResourceCompiler())})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(dst).WithData(data).Render()
}
