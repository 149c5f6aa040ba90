package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/young-ng/young-ng/internal/overlay"
)

var overlaysCmd = &cobra.Command{
	Use:   "overlays",
	Short: "List the files written on top of the generated project",
	Long: `List the files written on top of the generated project.

overwrite entries replace the file; merge entries only add the keys an
existing JSON file lacks.`,
	Args: cobra.NoArgs,
	RunE: runOverlays,
}

func init() {
	rootCmd.AddCommand(overlaysCmd)
}

func runOverlays(cmd *cobra.Command, args []string) error {
	entries, err := overlay.Default()
	if err != nil {
		return fail(err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"Path", "Mode", "Bytes"})
	for _, e := range entries {
		if err := table.Append([]string{e.Path, string(e.Mode), fmt.Sprint(len(e.Content))}); err != nil {
			return fail(err)
		}
	}
	if err := table.Render(); err != nil {
		return fail(err)
	}
	return nil
}
