// Package config loads runtime configuration for gmailfilter.
//
// Configuration is resolved once at startup from three layers, in
// increasing order of precedence:
//
//  1. Built-in defaults (the application runs against a local MCP
//     server without any setup beyond GEMINI_API_KEY)
//  2. An optional YAML config file (--config flag)
//  3. Environment variables
//
// The resolved Config value is threaded explicitly into the core
// packages. No package outside config reads the environment, so tests
// and callers control transport selection and credentials directly.
package config
