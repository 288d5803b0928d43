package diff

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/session"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

func TestRequestOptions(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Set("diff.tokenizer", "word"))
	require.NoError(t, cfg.Set("diff.algorithm", "histogram"))

	opts, err := request{}.options(cfg)
	require.NoError(t, err)
	assert.Equal(t, tokenize.Word, opts.Diff.Tokenizer)
	assert.Equal(t, diff.Histogram, opts.Diff.Algorithm)
	assert.Nil(t, opts.Context)

	yes, two := true, 2
	opts, err = request{Tokenizer: "char", Algorithm: "myers", LongestToken: &yes, IgnoreCase: true, Context: &two}.options(cfg)
	require.NoError(t, err)
	assert.Equal(t, tokenize.Character, opts.Diff.Tokenizer)
	assert.Equal(t, diff.Myers, opts.Diff.Algorithm)
	assert.True(t, opts.Diff.LongestToken)
	assert.True(t, opts.Diff.Tokenize.IgnoreCase)
	assert.Equal(t, 2, *opts.Context)

	_, err = request{Tokenizer: "ast"}.options(cfg)
	assert.ErrorIs(t, err, tokenize.ErrUnknownKind)
	_, err = request{Algorithm: "patience"}.options(cfg)
	assert.ErrorIs(t, err, diff.ErrUnknownAlgorithm)
	bad := -3
	_, err = request{Context: &bad}.options(cfg)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	svc := session.New(nil, filestate.NewMemory(), fileio.NewMemory())

	res, err := svc.Diff(context.Background(), "a\nb\n", "a\nB\n", serviceOpts(t, request{}))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "x", "y", res, false, false))
	assert.Equal(t, "--- x\n+++ y\n@@ -1,2 +1,2 @@\n a\n-b\n+B\n1 inserted, 1 deleted\n", buf.String())

	res, err = svc.Diff(context.Background(), "same\n", "same\n", serviceOpts(t, request{}))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, render(&buf, "x", "y", res, false, false))
	assert.Equal(t, "No differences\n", buf.String())

	res, err = svc.Diff(context.Background(), "one two\n", "one 2\n", serviceOpts(t, request{Tokenizer: "word"}))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, render(&buf, "x", "y", res, false, false))
	assert.Contains(t, buf.String(), "[-two\n-]{+2\n+}")
}

func serviceOpts(t *testing.T, r request) service.DiffOptions {
	t.Helper()
	opts, err := r.options(&config.Config{})
	require.NoError(t, err)
	return opts
}

func TestDiffTool(t *testing.T) {
	tool := (&Extension{}).MCPTools()
	require.Len(t, tool, 1)
	assert.Equal(t, "llmedit_diff", tool[0].Tool.Name)

	extCtx := extension.NewContext(nil, nil)
	call := func(args map[string]any) *mcp.CallToolResult {
		t.Helper()
		res, err := tool[0].Handler(context.Background(), extCtx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "llmedit_diff", Arguments: args},
		})
		require.NoError(t, err)
		return res
	}

	res := call(map[string]any{"old_text": "a\n", "new_text": "b\n"})
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	var got diffResponse
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &got))
	assert.Equal(t, "--- old\n+++ new\n@@ -1 +1 @@\n-a\n+b\n", got.Diff)
	assert.Equal(t, 1, got.Summary.Hunks)
	assert.False(t, got.Summary.Identical)
	assert.Empty(t, got.Inline)

	res = call(map[string]any{"old_text": "one two", "new_text": "one 2", "tokenizer": "word", "context": float64(0)})
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &got))
	assert.Equal(t, "one [-two-]{+2+}\n", got.Inline)

	res = call(map[string]any{"old_text": "a\n"})
	assert.True(t, res.IsError)

	res = call(map[string]any{"old_text": "a", "new_text": "b", "tokenizer": "ast"})
	assert.True(t, res.IsError)
}
