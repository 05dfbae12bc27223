package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/agentic-research/canopy/api"
	"github.com/agentic-research/canopy/internal/config"
	"github.com/agentic-research/canopy/internal/forest"
	"github.com/agentic-research/canopy/internal/ingest"
	"github.com/agentic-research/canopy/internal/logging"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

// cli carries the resolved configuration for one invocation.
type cli struct {
	cfg config.Config

	selector   string
	logLevel   string
	logFormat  string
	noValidate bool
	asJSON     bool
}

// NewRootCmd builds the canopy command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "canopy",
		Short:         "Canopy: structural queries over a forest of file records",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync() // stderr sync fails on some terminals
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.selector, "selector", "", "JSONPath selecting the records in a JSON source (default $[*])")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&c.logFormat, "log-format", "", "Log format: console or json")
	pf.BoolVar(&c.noValidate, "no-validate", false, "Query without checking that the input is a forest")
	pf.BoolVar(&c.asJSON, "json", false, "Print results as JSON")

	root.AddCommand(
		newLeavesCmd(c),
		newCategoriesCmd(c),
		newLargestCmd(c),
		newRollupCmd(c),
		newValidateCmd(c),
		newImportCmd(c),
		newServeCmd(c),
	)
	return root
}

// configure layers flags that were set explicitly over the environment.
func (c *cli) configure(cmd *cobra.Command) error {
	c.cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("selector") {
		c.cfg.Selector = c.selector
	}
	if flags.Changed("log-level") {
		c.cfg.LogLevel = c.logLevel
	}
	if flags.Changed("log-format") {
		c.cfg.LogFormat = c.logFormat
	}
	if flags.Changed("no-validate") {
		c.cfg.Validate = !c.noValidate
	}

	if err := logging.Init(logging.Config{Level: c.cfg.LogLevel, Format: c.cfg.LogFormat}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logging.L().Debug("configured",
		zap.String("command", cmd.Name()),
		zap.Stringer("level", logging.Level()),
		zap.String("selector", c.cfg.Selector),
		zap.Bool("validate", c.cfg.Validate),
	)
	return nil
}

func (c *cli) loader() *ingest.Loader {
	return ingest.NewLoader(c.cfg.Selector, logging.L())
}

// loadRecords reads source and, unless disabled, rejects input that is not a forest.
func (c *cli) loadRecords(cmd *cobra.Command, source string) ([]api.FileRecord, error) {
	records, err := c.loader().Load(cmd.Context(), source)
	if err != nil {
		return nil, err
	}
	if c.cfg.Validate {
		if err := forest.Validate(records); err != nil {
			return nil, fmt.Errorf("%s is not a valid forest (rerun with --no-validate to query it anyway): %w", source, err)
		}
	}
	return records, nil
}

// printJSON writes v as one line of JSON.
func printJSON(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, oj.JSON(v, &oj.Options{UseTags: true}))
	return err
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
