package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/gitshare/internal/contract"
)

func testHandler(client contract.GitClient) *toolHandler {
	return &toolHandler{
		baseCfg: &contract.Config{
			RepoPath:         "/repo",
			SkipCurrentLines: true,
		},
		client: client,
	}
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewMCPServer(t *testing.T) {
	s := NewMCPServer(&contract.Config{}, new(contract.MockGitClient), nil)
	assert.NotNil(t, s)
}

func TestHandleGetContributionSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("requires start_year", func(t *testing.T) {
		h := testHandler(new(contract.MockGitClient))
		result, err := h.handleGetContributionSummary(ctx, toolRequest(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "start_year")
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		h := testHandler(new(contract.MockGitClient))
		result, err := h.handleGetContributionSummary(ctx, toolRequest(map[string]any{
			"start_year": float64(2024),
			"end_year":   float64(2021),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("summarizes a window", func(t *testing.T) {
		client := new(contract.MockGitClient)
		client.On("ShortLog", ctx, "/repo", mock.Anything, mock.Anything).
			Return([]byte("Alice\n 1 file changed, 2 insertions(+)\n"), nil)

		h := testHandler(client)
		result, err := h.handleGetContributionSummary(ctx, toolRequest(map[string]any{
			"start_year": float64(2021),
			"end_year":   float64(2024),
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Alice")
		client.AssertExpectations(t)
	})

	t.Run("resolves repo_path override", func(t *testing.T) {
		client := new(contract.MockGitClient)
		client.On("GetRepoRoot", ctx, "/elsewhere").Return("", assert.AnError)

		h := testHandler(client)
		result, err := h.handleGetContributionSummary(ctx, toolRequest(map[string]any{
			"start_year": float64(2021),
			"repo_path":  "/elsewhere",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleGetCurrentLines(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed date", func(t *testing.T) {
		h := testHandler(new(contract.MockGitClient))
		result, err := h.handleGetCurrentLines(ctx, toolRequest(map[string]any{
			"date": "June 2024",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("snapshots current tree", func(t *testing.T) {
		client := new(contract.MockGitClient)
		h := testHandler(client)
		// No era dirs exist at /repo, so the snapshot is empty but valid.
		h.baseCfg.ModernEra = contract.EraConfig{Name: "modern", Dirs: []string{"src"}}
		h.baseCfg.Extensions = []string{".jl"}

		result, err := h.handleGetCurrentLines(ctx, toolRequest(map[string]any{}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "snapshot_version")
	})
}
