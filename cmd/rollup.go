package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/spf13/cobra"
)

type rollupRow struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Total int64  `json:"total_size"`
}

func newRollupCmd(c *cli) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rollup [source]",
		Short: "Print every node's size including its descendants, largest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.loadRecords(cmd, args[0])
			if err != nil {
				return err
			}

			idx := forest.BuildIndex(records)
			rows := []rollupRow{}
			for id, total := range forest.Rollup(records) {
				r, _ := idx.Record(id)
				rows = append(rows, rollupRow{ID: id, Name: r.Name, Total: total})
			}
			sort.Slice(rows, func(i, j int) bool {
				if rows[i].Total != rows[j].Total {
					return rows[i].Total > rows[j].Total
				}
				return rows[i].ID < rows[j].ID
			})
			if top > 0 && top < len(rows) {
				rows = rows[:top]
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, rows)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTOTAL")
			for _, row := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", row.ID, row.Name, row.Total)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "Only print the N largest nodes (0 prints all)")
	return cmd
}
