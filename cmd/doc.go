// Package cmd implements the command-line interface for resend-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the send_email tool
//   - send: Send a single email from the command line and exit
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
