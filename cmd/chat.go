package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailfilter/internal/agent"
	"github.com/teemow/gmailfilter/internal/config"
	"github.com/teemow/gmailfilter/internal/gemini"
	"github.com/teemow/gmailfilter/internal/instrumentation"
	"github.com/teemow/gmailfilter/internal/logging"
	"github.com/teemow/gmailfilter/internal/mcpclient"
	"github.com/teemow/gmailfilter/internal/server"
)

// chatOptions holds the flag values for the chat command.
type chatOptions struct {
	configFile     string
	logLevel       string
	logFormat      string
	metricsEnabled bool
	metricsAddr    string
	maxHistory     int
	skipFetch      bool
}

func newChatCmd() *cobra.Command {
	var opts chatOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive email-categorization shell",
		Long: `Read email bodies line by line from standard input and categorize each
one through the Gemini model and the configured MCP tool server.

On startup the shell runs one fetch pass to list currently matching
emails (disable with --skip-fetch). Type "quit" or "exit" to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to a YAML config file. Environment variables take precedence.")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics on a dedicated port")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")
	cmd.Flags().IntVar(&opts.maxHistory, "max-history", 0, "Maximum conversation turns to keep; 0 keeps everything")
	cmd.Flags().BoolVar(&opts.skipFetch, "skip-fetch", false, "Skip the startup email fetch pass")

	return cmd
}

func runChat(cmd *cobra.Command, opts chatOptions) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("no Gemini API key configured: set %s or the gemini.api_key config field", "GEMINI_API_KEY")
	}

	logger := logging.Setup(logging.ParseLevel(opts.logLevel), opts.logFormat)

	provider, err := newProvider(ctx, opts.metricsEnabled)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	if opts.metricsEnabled && provider.Enabled() {
		metricsServer, err := startMetricsServer(logger, provider, opts.metricsAddr)
		if err != nil {
			return err
		}
		defer func() {
			// Flip readiness off first so probes stop routing to a
			// server that is draining
			metricsServer.Health().SetReady(false)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	logger.Debug("gemini backend configured",
		"model", cfg.Gemini.Model,
		"api_key", logging.SanitizeToken(cfg.Gemini.APIKey),
	)

	ag := buildAgent(cfg, logger, provider)
	out := cmd.OutOrStdout()

	if !opts.skipFetch {
		printFetch(out, ag.FilterEmails(ctx))
	}

	fmt.Fprintln(out, `Enter an email body to categorize it. Type "quit" or "exit" to leave.`)

	history := make([]gemini.Content, 0)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "email> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		}

		var category agent.Category
		category, history = ag.CategorizeEmail(ctx, line, history)
		history = trimHistory(history, opts.maxHistory)

		fmt.Fprintf(out, "category: %s\n", category.String())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(out, "Bye.")
	return nil
}

// newProvider builds the instrumentation provider. Instrumentation is on
// by default (INSTRUMENTATION_ENABLED=false turns it off); the
// --metrics-enabled flag forces it on so the scrape endpoint always has
// a live registry behind it.
func newProvider(ctx context.Context, metricsEnabled bool) (*instrumentation.Provider, error) {
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if metricsEnabled {
		instrConfig.Enabled = true
	}
	return instrumentation.NewProvider(ctx, instrConfig)
}

func startMetricsServer(logger *slog.Logger, provider *instrumentation.Provider, addr string) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ready:
		logger.Info("metrics server started", "addr", metricsServer.Addr())
	case err := <-errCh:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}

	return metricsServer, nil
}

func buildAgent(cfg config.Config, logger *slog.Logger, provider *instrumentation.Provider) *agent.Agent {
	return buildAgentWithFetch(cfg, logger, provider, "", 0)
}

// buildAgentWithFetch allows the fetch command to override the query and
// result limit; empty values fall back to the agent defaults.
func buildAgentWithFetch(cfg config.Config, logger *slog.Logger, provider *instrumentation.Provider, fetchQuery string, fetchMaxResults int) *agent.Agent {
	backend := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
	)

	categorize, fetch := transportsFromConfig(cfg)

	return agent.New(backend, agent.Config{
		CategorizeTransport: categorize,
		FetchTransport:      fetch,
		FetchQuery:          fetchQuery,
		FetchMaxResults:     fetchMaxResults,
		CallTimeout:         cfg.MCP.CallTimeout,
	},
		agent.WithLogger(logger),
		agent.WithMetrics(provider.Metrics()),
		agent.WithTracer(provider.Tracer("agent")),
	)
}

// transportsFromConfig resolves the two tool-server transports. A server
// URL with an HTTP scheme selects the streamable HTTP transport for both
// loops; otherwise each loop spawns its own stdio tool server.
func transportsFromConfig(cfg config.Config) (categorize, fetch mcpclient.Transport) {
	var env []string
	if cfg.MCP.SerpAPIKey != "" {
		env = []string{"SERP_API_KEY=" + cfg.MCP.SerpAPIKey}
	}

	categorize = mcpclient.SelectTransport(cfg.MCP.ServerURL, cfg.MCP.StdioCommand, cfg.MCP.StdioArgs, env)
	fetch = mcpclient.SelectTransport(cfg.MCP.ServerURL, cfg.MCP.GmailStdioCommand, cfg.MCP.GmailStdioArgs, nil)
	return categorize, fetch
}

// trimHistory drops the oldest turns once history exceeds max. Turns are
// removed in user/model pairs so the remaining conversation stays
// well-formed.
func trimHistory(history []gemini.Content, max int) []gemini.Content {
	if max <= 0 || len(history) <= max {
		return history
	}
	drop := len(history) - max
	if drop%2 != 0 {
		drop++
	}
	return history[drop:]
}

func printFetch(out io.Writer, records []map[string]any) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No matching emails.")
		return
	}
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "failed to render emails: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Fetched emails:\n%s\n", encoded)
}
