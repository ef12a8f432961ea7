package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelValues(t *testing.T) {
	// Downstream consumers key off the exact strings; a drift here is a
	// breaking change.
	assert.Equal(t, Sentinel("error_mcp_session_categorization"), SentinelSessionFailure)
	assert.Equal(t, Sentinel("unknown_category_error_gemini_api"), SentinelBackendFailure)
	assert.Equal(t, Sentinel("error_mcp_json_decode"), SentinelJSONDecode)
	assert.Equal(t, Sentinel("error_mcp_result_structure"), SentinelResultStructure)
	assert.Equal(t, Sentinel("unknown_no_function_call_or_text"), SentinelNoCallOrText)
	assert.Equal(t, Sentinel("error_calling_mcp_tool_categorize_email"), ToolCallSentinel("categorize_email"))
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     string
	}{
		{name: "sentinel", category: sentinelCategory(SentinelJSONDecode), want: "error_mcp_json_decode"},
		{name: "data", category: dataCategory(map[string]any{"category": "updates"}), want: `{"category":"updates"}`},
		{name: "text", category: textCategory("promotions"), want: "promotions"},
		{name: "empty", category: Category{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestCategoryFailed(t *testing.T) {
	assert.True(t, sentinelCategory(SentinelSessionFailure).Failed())
	assert.False(t, textCategory("social").Failed())
	assert.False(t, dataCategory(map[string]any{"category": "social"}).Failed())
}
