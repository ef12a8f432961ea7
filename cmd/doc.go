// Package cmd implements the command-line interface for gmailfilter.
//
// This package provides the following commands:
//   - chat: Interactive shell that categorizes email bodies via Gemini and MCP tools
//   - fetch: Run one email fetch over the MCP tool server and print the records
//   - version: Display version information
//
// The chat command is the default command when no subcommand is specified.
package cmd
