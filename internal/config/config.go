package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable keys. Env values take precedence over the config
// file, which takes precedence over built-in defaults.
const (
	envGeminiAPIKey    = "GEMINI_API_KEY"
	envGeminiModel     = "GEMINI_MODEL"
	envGeminiBaseURL   = "GEMINI_BASE_URL"
	envMCPServerURL    = "MCP_SERVER_URL"
	envMCPStdioCommand = "MCP_STDIO_COMMAND"
	envSerpAPIKey      = "SERP_API_KEY"
	envMCPGmailCommand = "MCP_STDIO_GMAIL_COMMAND"
	envMCPCallTimeout  = "MCP_CALL_TIMEOUT"
)

// Defaults applied when neither the environment nor the config file
// provides a value.
const (
	DefaultGeminiModel   = "gemini-1.5-pro-latest"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultServerURL     = "http://localhost:8000/mcp"
	DefaultStdioCommand  = "mcp-flight-search"
	DefaultGmailCommand  = "mcp-gmail-tool"
	DefaultCallTimeout   = 60 * time.Second
)

// Config holds the resolved runtime configuration. It is loaded once in
// cmd/ before any loop runs; the core packages never read the environment.
type Config struct {
	Gemini GeminiConfig `yaml:"gemini"`
	MCP    MCPConfig    `yaml:"mcp"`
}

// GeminiConfig configures the model backend client.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Required for
	// categorization; the chat shell refuses to categorize without it.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier used for generateContent calls.
	Model string `yaml:"model"`

	// BaseURL is the API endpoint. Overridable for testing.
	BaseURL string `yaml:"base_url"`
}

// MCPConfig configures tool-server transports.
type MCPConfig struct {
	// ServerURL selects the streamable HTTP transport when it starts
	// with an HTTP scheme. Set it to an empty string to force stdio.
	ServerURL string `yaml:"server_url"`

	// StdioCommand is the command spawned for the categorization tool
	// server when the stdio transport is selected.
	StdioCommand string `yaml:"stdio_command"`

	// StdioArgs are passed to StdioCommand.
	StdioArgs []string `yaml:"stdio_args"`

	// SerpAPIKey is injected into the stdio tool server's environment.
	// The flight-search tool server needs it to reach its own backend.
	SerpAPIKey string `yaml:"serp_api_key"`

	// GmailStdioCommand is the command spawned for the email-fetch tool
	// server when the stdio transport is selected.
	GmailStdioCommand string `yaml:"gmail_stdio_command"`

	// GmailStdioArgs are passed to GmailStdioCommand.
	GmailStdioArgs []string `yaml:"gmail_stdio_args"`

	// CallTimeout bounds a whole categorization or fetch call, covering
	// handshake, discovery, model request, and tool invocation. Zero
	// disables the deadline.
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// Load resolves configuration from defaults, an optional YAML file, and
// the environment, in increasing order of precedence. An empty path skips
// the file layer.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Gemini: GeminiConfig{
			Model:   DefaultGeminiModel,
			BaseURL: DefaultGeminiBaseURL,
		},
		MCP: MCPConfig{
			ServerURL:         DefaultServerURL,
			StdioCommand:      DefaultStdioCommand,
			StdioArgs:         []string{"--connection_type", "stdio"},
			GmailStdioCommand: DefaultGmailCommand,
			GmailStdioArgs:    []string{"--connection_type", "stdio"},
			CallTimeout:       DefaultCallTimeout,
		},
	}
}

func applyEnv(cfg *Config) {
	setEnvString(&cfg.Gemini.APIKey, envGeminiAPIKey)
	setEnvString(&cfg.Gemini.Model, envGeminiModel)
	setEnvString(&cfg.Gemini.BaseURL, envGeminiBaseURL)
	setEnvString(&cfg.MCP.StdioCommand, envMCPStdioCommand)
	setEnvString(&cfg.MCP.SerpAPIKey, envSerpAPIKey)
	setEnvString(&cfg.MCP.GmailStdioCommand, envMCPGmailCommand)

	// MCP_SERVER_URL may be set to the empty string to force the stdio
	// transport, so presence matters, not just non-emptiness.
	if v, ok := os.LookupEnv(envMCPServerURL); ok {
		cfg.MCP.ServerURL = v
	}

	if v := os.Getenv(envMCPCallTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MCP.CallTimeout = d
		}
	}
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
