package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gmailfilter/internal/gemini"
	"github.com/teemow/gmailfilter/internal/logging"
	"github.com/teemow/gmailfilter/internal/mcpclient"
)

// CategorizeEmail runs one categorization turn: the email body and prior
// history go to the model backend together with the tool catalog
// discovered over a fresh session; a function-call reply drives one tool
// invocation; the decoded payload (or direct text) is the category.
//
// The function never returns an error. Every fault is classified into a
// Sentinel, and the returned history always grows by exactly two turns:
// the user turn that was sent, and a model turn that is either the
// genuine reply or a synthetic error note. The input history is never
// mutated; callers may branch or discard it.
func (a *Agent) CategorizeEmail(ctx context.Context, body string, history []gemini.Content) (Category, []gemini.Content) {
	start := time.Now()
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "agent.CategorizeEmail")
	defer span.End()

	logger := logging.WithOperation(a.logger, "categorize")
	logger.Info("categorizing email",
		"preview", logging.Snippet(body, 100),
		"history_turns", len(history),
	)

	category, updated := a.categorize(ctx, logger, body, history)

	status := logging.StatusSuccess
	if category.Failed() {
		status = logging.StatusError
		logger.Warn("categorization failed", logging.Status(status), "sentinel", string(category.Sentinel))
	} else {
		logger.Info("categorization finished", logging.Status(status))
	}
	a.metrics.RecordCategorization(ctx, status, string(category.Sentinel), time.Since(start))

	return category, updated
}

func (a *Agent) categorize(ctx context.Context, logger *slog.Logger, body string, history []gemini.Content) (Category, []gemini.Content) {
	user := userTurn(body)

	session, err := a.openSession(ctx, a.config.CategorizeTransport)
	if err != nil {
		logger.Error("mcp session failed", logging.Err(err))
		return sentinelCategory(SentinelSessionFailure), appendTurns(history, user, modelNote(noteSessionError))
	}
	defer func() {
		_ = session.Close()
	}()

	tools, err := session.Tools(ctx)
	if err != nil {
		// Discovery failure classifies like session establishment: the
		// model backend is never invoked without a tool catalog
		logger.Error("tool discovery failed", logging.Err(err))
		return sentinelCategory(SentinelSessionFailure), appendTurns(history, user, modelNote(noteSessionError))
	}
	logger.Debug("discovered tools", "count", len(tools), "names", toolNames(tools))

	contents := appendTurns(history, user)
	modelStart := time.Now()
	resp, err := a.backend.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: contents,
		Tools:    mcpclient.Declarations(tools),
		// Temperature pinned to zero: identical input and history must
		// categorize identically, up to the backend's own determinism
		GenerationConfig: &gemini.GenerationConfig{Temperature: gemini.Temperature(0)},
	})
	if err != nil {
		a.metrics.RecordModelRequest(ctx, logging.StatusError, time.Since(modelStart))
		logger.Error("model backend call failed", logging.Err(err))
		return sentinelCategory(SentinelBackendFailure), appendTurns(history, user, modelNote(noteBackendError))
	}
	a.metrics.RecordModelRequest(ctx, logging.StatusSuccess, time.Since(modelStart))

	reply := gemini.Classify(resp)
	switch reply.Kind {
	case gemini.ReplyCall:
		logger.Info("model requested function call", logging.Tool(reply.Call.Name))
		// The raw call part goes into history before invocation so a
		// failed tool call still shows what the model asked for
		updated := appendTurns(history, user, modelTurn(reply.Part))
		return a.invokeCategorizeTool(ctx, logger, session, reply.Call), updated

	case gemini.ReplyText:
		logger.Info("model returned direct text", "preview", logging.Snippet(resp.Text(), 100))
		return textCategory(reply.Text), appendTurns(history, user, modelTurn(reply.Part))

	case gemini.ReplyEmpty:
		logger.Warn("model returned neither function call nor text")
		return sentinelCategory(SentinelNoCallOrText), appendTurns(history, user, modelTurn(reply.Part))

	default: // gemini.ReplyMalformed
		logger.Error("model response carried no content")
		return sentinelCategory(SentinelBackendFailure), appendTurns(history, user, modelNote(noteBackendError))
	}
}

// invokeCategorizeTool drives the model-requested tool call over the
// still-open session and decodes the result into a category.
func (a *Agent) invokeCategorizeTool(ctx context.Context, logger *slog.Logger, session ToolSession, call *gemini.FunctionCall) Category {
	logger = logging.WithTool(logger, call.Name)

	start := time.Now()
	result, err := session.CallTool(ctx, call.Name, call.Args)
	if err != nil {
		a.metrics.RecordToolInvocation(ctx, call.Name, logging.StatusError, time.Since(start))
		logger.Error("tool invocation failed", logging.Err(err))
		return sentinelCategory(ToolCallSentinel(call.Name))
	}
	a.metrics.RecordToolInvocation(ctx, call.Name, logging.StatusSuccess, time.Since(start))

	if result == nil || len(result.Content) == 0 {
		logger.Error("tool result missing content")
		return sentinelCategory(SentinelResultStructure)
	}

	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		logger.Error("tool result content is not text")
		return sentinelCategory(SentinelResultStructure)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		logger.Error("tool returned non-JSON payload", "payload", logging.Snippet(text.Text, 200))
		return sentinelCategory(SentinelJSONDecode)
	}

	return dataCategory(data)
}

func toolNames(tools []mcp.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}
