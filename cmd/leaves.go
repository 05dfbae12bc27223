package cmd

import (
	"fmt"
	"sort"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/spf13/cobra"
)

func newLeavesCmd(c *cli) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "leaves [source]",
		Short: "List the names of files that contain no other file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.loadRecords(cmd, args[0])
			if err != nil {
				return err
			}

			leaves := forest.LeafFiles(records)
			if sorted {
				sort.Strings(leaves)
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, leaves)
			}
			for _, name := range leaves {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort names instead of keeping input order")
	return cmd
}
