// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/gitshare/internal/contract"
)

// NewMCPServer initializes and configures the Gitshare MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitshare Summary Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: get_contribution_summary ---
	s.AddTool(mcp.NewTool("get_contribution_summary",
		mcp.WithDescription("Summarize per-contributor git statistics (commits, lines added, lines deleted, current core code lines) over a year range."),
		mcp.WithNumber("start_year", mcp.Description("First year of the reporting window."), mcp.Required()),
		mcp.WithNumber("end_year", mcp.Description("Last year of the reporting window. Defaults to the current year.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithBoolean("skip_loc", mcp.Description("Skip the blame-based current-lines metric, which can be slow on large repositories.")),
	), h.handleGetContributionSummary)

	// --- 2. Tool: get_current_lines ---
	s.AddTool(mcp.NewTool("get_current_lines",
		mcp.WithDescription("Count currently-attributable lines of core code per contributor as of a date, using git blame."),
		mcp.WithString("date", mcp.Description("Snapshot date in YYYY-MM-DD form. Defaults to today.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
	), h.handleGetCurrentLines)

	return s
}

// StartMCPServer starts the Gitshare MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
