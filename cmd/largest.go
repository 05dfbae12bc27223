package cmd

import (
	"fmt"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/spf13/cobra"
)

func newLargestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "largest [source]",
		Short: "Print the largest size of any file including everything nested under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.loadRecords(cmd, args[0])
			if err != nil {
				return err
			}

			size := forest.LargestFileSize(records)
			if c.asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"largest_file_size": size})
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
}
