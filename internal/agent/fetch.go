package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gmailfilter/internal/logging"
)

// Error markers returned by FilterEmails. The fetch loop never fails its
// caller; faults collapse into single-element lists of these records.
const (
	fetchSessionError = "MCP client session failed for filtering"
)

// FilterEmails opens its own tool session, checks that the configured
// email-fetch capability is advertised, invokes it with the fixed
// query/limit, and normalizes every content part into a record. It never
// returns an error: session faults, a missing capability, and invocation
// faults all come back as error-marker records, and a successful call
// with no content yields an empty (non-nil) list.
func (a *Agent) FilterEmails(ctx context.Context) []map[string]any {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "agent.FilterEmails")
	defer span.End()

	logger := logging.WithOperation(a.logger, "fetch")
	logger.Info("fetching emails via mcp", logging.Tool(a.config.FetchTool))

	records, status := a.fetch(ctx, logger)
	a.metrics.RecordFetch(ctx, status)

	return records
}

// fetch reports its status explicitly: error-marker records and genuine
// payloads that happen to carry an "error" field look alike, so the
// outcome is never inferred from record shape.
func (a *Agent) fetch(ctx context.Context, logger *slog.Logger) ([]map[string]any, string) {
	session, err := a.openSession(ctx, a.config.FetchTransport)
	if err != nil {
		logger.Error("mcp session failed", logging.Err(err))
		return []map[string]any{{"error": fetchSessionError}}, logging.StatusError
	}
	defer func() {
		_ = session.Close()
	}()

	tools, err := session.Tools(ctx)
	if err != nil {
		logger.Error("tool discovery failed", logging.Err(err))
		return []map[string]any{{"error": fetchSessionError}}, logging.StatusError
	}

	names := toolNames(tools)
	logger.Debug("discovered tools", "names", names)

	if !slices.Contains(names, a.config.FetchTool) {
		logger.Warn("fetch tool not advertised", logging.Tool(a.config.FetchTool))
		return []map[string]any{{"error": fmt.Sprintf("Tool %s not found", a.config.FetchTool)}}, logging.StatusError
	}

	args := map[string]any{
		"query":       a.config.FetchQuery,
		"max_results": a.config.FetchMaxResults,
	}

	start := time.Now()
	result, err := session.CallTool(ctx, a.config.FetchTool, args)
	if err != nil {
		a.metrics.RecordToolInvocation(ctx, a.config.FetchTool, logging.StatusError, time.Since(start))
		logger.Error("tool invocation failed", logging.Tool(a.config.FetchTool), logging.Err(err))
		return []map[string]any{{"error": fmt.Sprintf("Failed to call %s", a.config.FetchTool)}}, logging.StatusError
	}
	a.metrics.RecordToolInvocation(ctx, a.config.FetchTool, logging.StatusSuccess, time.Since(start))

	records := make([]map[string]any, 0)
	if result == nil {
		return records, logging.StatusSuccess
	}

	for _, part := range result.Content {
		records = append(records, classifyFetchPart(part))
	}

	logger.Info("fetched email records", "count", len(records), "senders", anonymizedSenders(records))
	return records, logging.StatusSuccess
}

// classifyFetchPart normalizes one result content part: non-empty text
// parts are decoded as JSON records, undecodable text is kept raw but
// tagged, and anything else becomes an unknown-part record.
func classifyFetchPart(part mcp.Content) map[string]any {
	text, ok := mcp.AsTextContent(part)
	if !ok || text.Text == "" {
		return map[string]any{"unknown_part": fmt.Sprintf("%v", part)}
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(text.Text), &record); err != nil {
		return map[string]any{"raw_text": text.Text, "error": "not_json"}
	}
	return record
}

// anonymizedSenders extracts the "from" addresses of fetched records in
// a log-safe form.
func anonymizedSenders(records []map[string]any) []string {
	senders := make([]string, 0, len(records))
	for _, record := range records {
		if from, ok := record["from"].(string); ok && from != "" {
			senders = append(senders, logging.AnonymizeEmail(from))
		}
	}
	return senders
}
