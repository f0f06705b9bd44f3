// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the awrlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.ReportLoader) *server.MCPServer {
	s := server.NewMCPServer(
		"awrlens Migration Advisor",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
	}

	// --- 1. Tool: parse_report ---
	s.AddTool(mcp.NewTool("parse_report",
		mcp.WithDescription("Parse an Oracle AWR or Statspack dump and return its metadata, section row counts and diagnostics."),
		mcp.WithString("path", mcp.Description("Path to the dump file."), mcp.Required()),
	), h.handleParseReport)

	// --- 2. Tool: analyze_report ---
	s.AddTool(mcp.NewTool("analyze_report",
		mcp.WithDescription("Score the migration complexity of a dump against AWS database targets and recommend an instance size."),
		mcp.WithString("path", mcp.Description("Path to the dump file."), mcp.Required()),
		mcp.WithString("targets", mcp.Description("Comma-separated targets (rds-oracle, rds-postgresql, aurora-postgresql, rds-mysql, aurora-mysql). Defaults to all.")),
	), h.handleAnalyzeReport)

	// --- 3. Tool: sga_advice ---
	s.AddTool(mcp.NewTool("sga_advice",
		mcp.WithDescription("Recommend an SGA size per instance from the SGA target advisory of a dump."),
		mcp.WithString("path", mcp.Description("Path to the dump file."), mcp.Required()),
	), h.handleSGAAdvice)

	return s
}

// StartMCPServer starts the awrlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.ReportLoader) error {
	s := NewMCPServer(baseCfg, loader)
	return server.ServeStdio(s)
}
