package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/gitshare/core"
	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/history"
	"github.com/huangsam/gitshare/internal/identity"
	"github.com/huangsam/gitshare/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetContributionSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot resolve repository at %q: %v", p, err)), nil
		}
		cfg.RepoPath = root
	}
	if request.GetBool("skip_loc", false) {
		cfg.SkipCurrentLines = true
	}

	now := time.Now().UTC()
	startYear := request.GetInt("start_year", 0)
	if startYear == 0 {
		return mcp.NewToolResultError("start_year is required"), nil
	}
	endYear := request.GetInt("end_year", now.Year())
	if startYear > endYear {
		return mcp.NewToolResultError(fmt.Sprintf("start year %d is after end year %d", startYear, endYear)), nil
	}

	window := contract.ResolveWindow(startYear, endYear, cfg.EraBoundary, now)

	summary, err := core.BuildSummary(ctx, cfg, h.client, h.mgr, window, now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	result := core.FoldResult(summary, cfg, window, now)
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCurrentLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot resolve repository at %q: %v", p, err)), nil
		}
		cfg.RepoPath = root
	}

	now := time.Now().UTC()
	date := now
	if d := request.GetString("date", ""); d != "" {
		parsed, err := time.Parse(contract.DateFormat, d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: %v", d, err)), nil
		}
		date = parsed
	}

	snap := history.NewSnapshot(h.client, cfg)
	counts, version, err := snap.CountLines(ctx, date, now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("current-lines snapshot failed: %v", err)), nil
	}

	type snapshotOutput struct {
		SnapshotVersion string               `json:"snapshot_version"`
		Shares          []schema.AuthorShare `json:"shares"`
	}
	out := snapshotOutput{
		SnapshotVersion: version,
		Shares:          identity.Shares(counts, identity.AliasTable(cfg.Aliases)),
	}

	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
