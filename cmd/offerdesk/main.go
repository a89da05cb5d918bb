package main

import (
	"fmt"
	"os"

	"offerdesk/config"
	"offerdesk/internal/logger"

	"github.com/spf13/cobra"
)

type cli struct {
	envFile  string
	logLevel string
	config   config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "offerdesk",
		Short: "Offer letter generator and contact form relay",
		Long: `offerdesk serves three pages: a landing page, an offer letter form that
downloads a filled-in PDF, and a contact form relayed to a remote endpoint.

The generate and validate-contact commands run the same logic without the
web server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}
			c.config = cfg
			logger.Init(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "optional .env file to read settings from")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		c.serveCmd(),
		c.generateCmd(),
		c.validateContactCmd(),
	)
	return root
}
