package mcpclient

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gmailfilter/internal/logging"
)

// Client identity advertised during the MCP handshake.
const (
	clientName    = "gmailfilter"
	clientVersion = "dev"
)

// rpcClient is the subset of the mcp-go client surface a Session uses.
// *client.Client satisfies it; tests substitute fakes.
type rpcClient interface {
	Initialize(ctx context.Context, request mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// newRPCClient builds the underlying transport client. Overridden in
// tests to avoid spawning processes or dialing endpoints.
var newRPCClient = func(ctx context.Context, t Transport) (rpcClient, error) {
	if t.Kind == TransportHTTP {
		c, err := client.NewStreamableHttpClient(t.BaseURL)
		if err != nil {
			return nil, err
		}
		if err := c.Start(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	}
	// The stdio client spawns the process and starts the transport itself
	return client.NewStdioMCPClient(t.Command, t.Env, t.Args...)
}

// Session is an initialized MCP session over one transport. It is owned
// by a single call: open it, defer Close, use it, never share it.
type Session struct {
	rpc        rpcClient
	transport  Transport
	serverInfo mcp.Implementation
	logger     *slog.Logger
}

// Open establishes the transport and performs the MCP initialize
// handshake. On any failure the half-open transport is closed before the
// error is returned, so callers only ever release fully opened sessions.
func Open(ctx context.Context, t Transport, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(logging.Transport(t.Kind.String()))

	rpc, err := newRPCClient(ctx, t)
	if err != nil {
		return nil, &SessionError{Op: "connect", Transport: t.Kind.String(), Err: err}
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}

	result, err := rpc.Initialize(ctx, initReq)
	if err != nil {
		_ = rpc.Close()
		return nil, &SessionError{Op: "initialize", Transport: t.Kind.String(), Err: err}
	}

	logger.Debug("mcp session initialized",
		"server", result.ServerInfo.Name,
		"server_version", result.ServerInfo.Version,
	)

	return &Session{
		rpc:        rpc,
		transport:  t,
		serverInfo: result.ServerInfo,
		logger:     logger,
	}, nil
}

// ServerInfo returns the server identity reported during the handshake.
func (s *Session) ServerInfo() mcp.Implementation {
	return s.serverInfo
}

// Tools lists the tool descriptors advertised by the server.
func (s *Session) Tools(ctx context.Context) ([]mcp.Tool, error) {
	result, err := s.rpc.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed tools", "server", s.ServerInfo().Name, "count", len(result.Tools))
	return result.Tools, nil
}

// CallTool invokes the named tool with the given arguments, passed
// through untransformed. Failures carry the tool name via *ToolError.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.rpc.CallTool(ctx, req)
	if err != nil {
		return nil, &ToolError{Tool: name, Err: err}
	}
	return result, nil
}

// Close releases the transport. Safe to call exactly once per opened
// session, on every exit path.
func (s *Session) Close() error {
	return s.rpc.Close()
}
