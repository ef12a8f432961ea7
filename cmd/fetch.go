package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailfilter/internal/config"
	"github.com/teemow/gmailfilter/internal/logging"
)

func newFetchCmd() *cobra.Command {
	var (
		configFile string
		logLevel   string
		logFormat  string
		query      string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch matching emails through the MCP tool server",
		Long: `Run one email fetch over the configured MCP tool server and print the
returned records as JSON. Faults are reported as error records; the
command itself always exits zero once configuration is valid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			logger := logging.Setup(logging.ParseLevel(logLevel), logFormat)

			provider, err := newProvider(ctx, false)
			if err != nil {
				return err
			}
			defer func() {
				_ = provider.Shutdown(context.Background())
			}()

			ag := buildAgentWithFetch(cfg, logger, provider, query, maxResults)
			printFetch(cmd.OutOrStdout(), ag.FilterEmails(ctx))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file. Environment variables take precedence.")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().StringVar(&query, "query", "", "Search query passed to the fetch tool (default: unread)")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "Maximum records requested from the fetch tool (default: 10)")

	return cmd
}
