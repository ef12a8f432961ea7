package mcpclient

import "strings"

// TransportKind identifies the session-establishment strategy.
type TransportKind int

const (
	// TransportStdio spawns a local tool-server process and speaks the
	// protocol over its stdin/stdout pipe.
	TransportStdio TransportKind = iota

	// TransportHTTP connects to a streamable HTTP endpoint.
	TransportHTTP
)

// String returns the transport kind name for logging.
func (k TransportKind) String() string {
	if k == TransportHTTP {
		return "http"
	}
	return "stdio"
}

// Transport holds the parameters needed to establish one session. It is
// resolved once per call and never mutated mid-session. Constructing a
// Transport performs no I/O; connections are opened by Open.
type Transport struct {
	// Kind selects the strategy.
	Kind TransportKind

	// BaseURL is the endpoint for the HTTP transport.
	BaseURL string

	// Command, Args, and Env describe the process for the stdio
	// transport. Env entries are KEY=VALUE pairs appended to the
	// child's environment.
	Command string
	Args    []string
	Env     []string
}

// SelectTransport chooses between the two strategies: a configured server
// URL beginning with an HTTP scheme selects the HTTP transport; anything
// else (including an empty URL) selects the stdio transport with the
// given process parameters. Purely deterministic, no side effects.
func SelectTransport(serverURL, command string, args, env []string) Transport {
	if serverURL != "" && strings.HasPrefix(serverURL, "http") {
		return Transport{
			Kind:    TransportHTTP,
			BaseURL: serverURL,
		}
	}
	return Transport{
		Kind:    TransportStdio,
		Command: command,
		Args:    args,
		Env:     env,
	}
}
