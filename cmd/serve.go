package cmd

import (
	"github.com/agentic-research/canopy/internal/logging"
	"github.com/agentic-research/canopy/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(c *cli) *cobra.Command {
	var cacheSize int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the queries as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cache-size") {
				c.cfg.CacheSize = cacheSize
			}

			srv, err := server.New(c.loader(), server.Options{
				Version:   version,
				CacheSize: c.cfg.CacheSize,
				Validate:  c.cfg.Validate,
				Log:       logging.L(),
			})
			if err != nil {
				return err
			}

			logging.L().Info("serving MCP on stdio",
				zap.Int("cache_size", c.cfg.CacheSize),
				zap.Bool("validate", c.cfg.Validate),
			)
			return srv.ServeStdio()
		},
	}
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "Record sets kept in memory between tool calls")
	return cmd
}
