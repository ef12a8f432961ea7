// Package mcpclient manages client sessions against MCP tool servers.
//
// It covers three concerns:
//
//   - Transport selection: SelectTransport deterministically picks the
//     streamable HTTP transport (configured URL with an HTTP scheme) or
//     the stdio transport (local process with command, args, and
//     environment). Selection constructs parameters only; no connection
//     is attempted.
//   - Session lifecycle: Open establishes the transport and performs the
//     MCP initialize handshake, returning a Session that exposes tool
//     discovery and invocation. Callers own the session for the duration
//     of one call and must defer Close immediately after a successful
//     Open so the transport is released on every exit path.
//   - Catalog adaptation: Declarations converts advertised tool
//     descriptors into the model backend's declaration format, stripping
//     schema metadata the backend rejects.
//
// Example usage:
//
//	t := mcpclient.SelectTransport(cfg.ServerURL, cfg.StdioCommand, cfg.StdioArgs, env)
//	session, err := mcpclient.Open(ctx, t, logger)
//	if err != nil {
//	    // session never opened; nothing to release
//	}
//	defer session.Close()
//
//	tools, err := session.Tools(ctx)
//	decls := mcpclient.Declarations(tools)
//	result, err := session.CallTool(ctx, "gmail_fetch_emails", args)
package mcpclient
