// Package email_tools implements the send_email MCP tool: argument
// validation, sender and reply-to resolution against configured defaults,
// attachment resolution, and a single provider call per invocation.
package email_tools
