// Package mcp implements an MCP server that exposes the Siteflow
// workflow-management API as a set of tools
//
// Each tool is a one-to-one mapping onto a single remote HTTP call.
// Credentials are loaded from the environment at startup; the bearer
// token obtained from the credential exchange is cached by the client
// for the process lifetime and refreshed on expiry
package mcp

const (
	// Name is the service name reported to MCP hosts and log streams
	Name = "siteflow-mcp"

	// Version is the server version
	Version = "0.1.0"
)
