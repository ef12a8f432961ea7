package agent

import "encoding/json"

// Sentinel is a designated string standing in for a classified failure.
// The categorization loop never returns errors to its caller; it returns
// one of these instead, paired with a consistent history.
type Sentinel string

// The closed failure taxonomy. Values are stable: downstream consumers
// and logs key off the exact strings.
const (
	// SentinelSessionFailure: transport/session establishment, handshake,
	// or tool discovery failed. The model backend was never invoked.
	SentinelSessionFailure Sentinel = "error_mcp_session_categorization"

	// SentinelBackendFailure: the model backend call raised or returned a
	// malformed response.
	SentinelBackendFailure Sentinel = "unknown_category_error_gemini_api"

	// SentinelJSONDecode: the tool result content was not the expected
	// structured payload.
	SentinelJSONDecode Sentinel = "error_mcp_json_decode"

	// SentinelResultStructure: the tool result lacked the expected
	// content shape.
	SentinelResultStructure Sentinel = "error_mcp_result_structure"

	// SentinelNoCallOrText: the model returned neither a function call
	// nor text.
	SentinelNoCallOrText Sentinel = "unknown_no_function_call_or_text"
)

// ToolCallSentinel returns the sentinel for a failed invocation of the
// named tool.
func ToolCallSentinel(tool string) Sentinel {
	return Sentinel("error_calling_mcp_tool_" + tool)
}

// Category is the result of one categorization attempt: exactly one of
// Data (decoded tool payload), Text (direct model reply), or Sentinel
// (classified failure) is set.
type Category struct {
	Text     string
	Data     map[string]any
	Sentinel Sentinel
}

// Failed reports whether the attempt ended in a classified failure.
func (c Category) Failed() bool {
	return c.Sentinel != ""
}

// String renders the category for display: the sentinel string on
// failure, the JSON form of the tool payload, or the direct text.
func (c Category) String() string {
	switch {
	case c.Sentinel != "":
		return string(c.Sentinel)
	case c.Data != nil:
		encoded, err := json.Marshal(c.Data)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return c.Text
	}
}

func textCategory(text string) Category {
	return Category{Text: text}
}

func dataCategory(data map[string]any) Category {
	return Category{Data: data}
}

func sentinelCategory(s Sentinel) Category {
	return Category{Sentinel: s}
}
