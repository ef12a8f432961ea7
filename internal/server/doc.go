// Package server provides the dedicated metrics endpoint for the
// gmailfilter application.
//
// MetricsServer exposes the Prometheus /metrics endpoint together with
// /healthz and /readyz probes on its own port, away from the stdio
// streams that the chat shell and spawned tool servers use.
package server
