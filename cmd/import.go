package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/agentic-research/canopy/internal/forest"
	"github.com/agentic-research/canopy/internal/ingest"
	"github.com/agentic-research/canopy/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import [source] [output.db]",
		Short: "Store the records of a source in a SQLite database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, output := args[0], args[1]
			log := logging.L()

			records, err := c.loader().Load(cmd.Context(), source)
			if err != nil {
				return err
			}
			// Import keeps malformed forests as they are; queries can still
			// be run on them with --no-validate.
			if verr := forest.Validate(records); verr != nil {
				log.Warn("importing records that do not form a forest", zap.String("source", source), zap.Error(verr))
			}

			_ = os.Remove(output) // Overwrite
			writer, err := ingest.NewSQLiteWriter(output)
			if err != nil {
				return err
			}

			start := time.Now()
			for _, r := range records {
				if err := writer.Add(r); err != nil {
					_ = writer.Close()
					return err
				}
			}
			if err := writer.Close(); err != nil {
				return fmt.Errorf("finish %s: %w", output, err)
			}

			logging.S().Infof("imported %d records from %s into %s in %s",
				writer.Count(), source, output, time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", len(records), output)
			return nil
		},
	}
}
