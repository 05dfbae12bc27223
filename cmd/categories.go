package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	var (
		k      int
		counts bool
	)

	cmd := &cobra.Command{
		Use:   "categories [source]",
		Short: "Rank categories by how many files carry them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 0 {
				return fmt.Errorf("-k must be >= 0, got %d", k)
			}
			records, err := c.loadRecords(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !counts {
				top := forest.KLargestCategories(records, k)
				if c.asJSON {
					return printJSON(out, top)
				}
				for _, tag := range top {
					fmt.Fprintln(out, tag)
				}
				return nil
			}

			tally := forest.CategoryCounts(records)
			if k < len(tally) {
				tally = tally[:k]
			}
			if c.asJSON {
				return printJSON(out, tally)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, cc := range tally {
				fmt.Fprintf(tw, "%s\t%d\n", cc.Category, cc.Files)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&k, "top", "k", 3, "Number of categories to return")
	cmd.Flags().BoolVar(&counts, "counts", false, "Print the number of files next to each category")
	return cmd
}
