// Package instrumentation provides OpenTelemetry metrics and tracing for
// gmailfilter.
//
// The Provider wires exporters from configuration: metrics can go to
// prometheus (scraped via the metrics server), an OTLP collector, or
// stdout; traces to OTLP, stdout, or nowhere (the default for an
// interactive tool). The Metrics recorder exposes domain counters and
// histograms for categorization attempts, model backend requests, MCP
// tool invocations, and email fetches. All recorders are nil-safe so
// instrumentation can be disabled without sprinkling checks through the
// call sites.
//
// Example usage:
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	metrics := provider.Metrics()
//	metrics.RecordCategorization(ctx, "success", "", elapsed)
package instrumentation
