package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/teemow/gmailfilter/internal/gemini"
	"github.com/teemow/gmailfilter/internal/instrumentation"
	"github.com/teemow/gmailfilter/internal/mcpclient"
)

// Defaults for the fetch loop, matching the Gmail tool server's contract.
const (
	DefaultFetchTool       = "gmail_fetch_emails"
	DefaultFetchQuery      = "unread"
	DefaultFetchMaxResults = 10
)

// Backend is the model capability the agent consumes: given conversation
// context and a tool catalog, produce either text or a function call.
type Backend interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// ToolSession is one open MCP session. *mcpclient.Session satisfies it;
// tests substitute fakes.
type ToolSession interface {
	Tools(ctx context.Context) ([]mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	Close() error
}

// SessionOpener establishes a tool session over the given transport.
type SessionOpener func(ctx context.Context, t mcpclient.Transport) (ToolSession, error)

// Config holds the per-agent parameters resolved before any call runs.
type Config struct {
	// CategorizeTransport is the transport for categorization sessions.
	CategorizeTransport mcpclient.Transport

	// FetchTransport is the transport for email-fetch sessions.
	FetchTransport mcpclient.Transport

	// FetchTool is the capability name the fetch loop looks for.
	FetchTool string

	// FetchQuery and FetchMaxResults are the fixed invocation arguments
	// for the fetch tool.
	FetchQuery      string
	FetchMaxResults int

	// CallTimeout bounds one whole categorization or fetch call. Zero
	// disables the deadline.
	CallTimeout time.Duration
}

// Agent coordinates model turns, tool sessions, and conversation state.
// Each call opens its own session and shares no mutable state with
// concurrent calls, so an Agent is safe for concurrent use as long as
// callers hold distinct history references.
type Agent struct {
	backend     Backend
	openSession SessionOpener
	config      Config
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	tracer      trace.Tracer
}

// Option customizes an Agent.
type Option func(*Agent)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(a *Agent) {
		a.metrics = metrics
	}
}

// WithTracer sets the tracer for per-call spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Agent) {
		a.tracer = tracer
	}
}

// WithSessionOpener replaces the session factory. Used by tests to avoid
// spawning processes or dialing endpoints.
func WithSessionOpener(open SessionOpener) Option {
	return func(a *Agent) {
		a.openSession = open
	}
}

// New creates an Agent for the given backend and configuration.
func New(backend Backend, config Config, opts ...Option) *Agent {
	if config.FetchTool == "" {
		config.FetchTool = DefaultFetchTool
	}
	if config.FetchQuery == "" {
		config.FetchQuery = DefaultFetchQuery
	}
	if config.FetchMaxResults == 0 {
		config.FetchMaxResults = DefaultFetchMaxResults
	}

	a := &Agent{
		backend: backend,
		config:  config,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("agent"),
	}
	a.openSession = func(ctx context.Context, t mcpclient.Transport) (ToolSession, error) {
		return mcpclient.Open(ctx, t, a.logger)
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// callContext derives the per-call context. The deadline covers every
// suspension point of one call: handshake, discovery, model request, and
// tool invocation. Cancellation unwinds through the same deferred session
// close as errors.
func (a *Agent) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.config.CallTimeout)
}
