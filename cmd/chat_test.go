package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gmailfilter/internal/config"
	"github.com/teemow/gmailfilter/internal/gemini"
	"github.com/teemow/gmailfilter/internal/mcpclient"
)

func TestTrimHistory(t *testing.T) {
	turn := func(text string) gemini.Content {
		return gemini.Content{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: text}}}
	}
	history := []gemini.Content{turn("u1"), turn("m1"), turn("u2"), turn("m2"), turn("u3"), turn("m3")}

	tests := []struct {
		name      string
		max       int
		wantLen   int
		wantFirst string
	}{
		{name: "unbounded", max: 0, wantLen: 6, wantFirst: "u1"},
		{name: "under limit", max: 10, wantLen: 6, wantFirst: "u1"},
		{name: "exact limit", max: 6, wantLen: 6, wantFirst: "u1"},
		{name: "drops oldest pair", max: 4, wantLen: 4, wantFirst: "u2"},
		{name: "odd limit drops whole pairs", max: 3, wantLen: 2, wantFirst: "u3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trimHistory(history, tt.max)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0].Parts[0].Text)
		})
	}
}

func TestTransportsFromConfig(t *testing.T) {
	t.Run("http server url selects streamable http for both loops", func(t *testing.T) {
		cfg := config.Config{}
		cfg.MCP.ServerURL = "http://localhost:8000/mcp"
		cfg.MCP.StdioCommand = "mcp-flight-search"
		cfg.MCP.GmailStdioCommand = "mcp-gmail-tool"

		categorize, fetch := transportsFromConfig(cfg)

		assert.Equal(t, mcpclient.TransportHTTP, categorize.Kind)
		assert.Equal(t, "http://localhost:8000/mcp", categorize.BaseURL)
		assert.Equal(t, mcpclient.TransportHTTP, fetch.Kind)
	})

	t.Run("empty server url selects per-loop stdio commands", func(t *testing.T) {
		cfg := config.Config{}
		cfg.MCP.StdioCommand = "mcp-flight-search"
		cfg.MCP.StdioArgs = []string{"--connection_type", "stdio"}
		cfg.MCP.SerpAPIKey = "serp-secret"
		cfg.MCP.GmailStdioCommand = "mcp-gmail-tool"
		cfg.MCP.GmailStdioArgs = []string{"--connection_type", "stdio"}

		categorize, fetch := transportsFromConfig(cfg)

		require.Equal(t, mcpclient.TransportStdio, categorize.Kind)
		assert.Equal(t, "mcp-flight-search", categorize.Command)
		assert.Equal(t, []string{"--connection_type", "stdio"}, categorize.Args)
		assert.Equal(t, []string{"SERP_API_KEY=serp-secret"}, categorize.Env)

		require.Equal(t, mcpclient.TransportStdio, fetch.Kind)
		assert.Equal(t, "mcp-gmail-tool", fetch.Command)
		assert.Equal(t, []string{"--connection_type", "stdio"}, fetch.Args)
		assert.Empty(t, fetch.Env)
	})
}

func TestChatCmdFlags(t *testing.T) {
	cmd := newChatCmd()

	for flag, def := range map[string]string{
		"config":          "",
		"log-level":       "info",
		"log-format":      "text",
		"metrics-enabled": "false",
		"metrics-addr":    ":9090",
		"max-history":     "0",
		"skip-fetch":      "false",
	} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "missing flag %s", flag)
		assert.Equal(t, def, f.DefValue, "flag %s", flag)
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["chat"])
	assert.True(t, names["fetch"])
	assert.True(t, names["version"])
}
