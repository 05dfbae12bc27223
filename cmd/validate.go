package cmd

import (
	"errors"
	"fmt"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/spf13/cobra"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [source]",
		Short: "Check that the records form a forest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verr := forest.Validate(records)
			if verr == nil {
				idx := forest.BuildIndex(records)
				fmt.Fprintf(out, "ok: %d records, %d roots\n", len(records), len(idx.Roots()))
				return nil
			}

			problems := []error{verr}
			var joined interface{ Unwrap() []error }
			if errors.As(verr, &joined) {
				problems = joined.Unwrap()
			}
			for _, p := range problems {
				fmt.Fprintln(out, p)
			}
			return fmt.Errorf("%s: %d structural problem(s)", args[0], len(problems))
		},
	}
}
