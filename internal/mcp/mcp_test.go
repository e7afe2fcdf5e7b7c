package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/game"
)

func testRuns(name string) (game.RunConfig, error) {
	switch name {
	case "", "default":
		return game.DefaultRunConfig(), nil
	case "glass":
		return game.RunConfig{HP: 12, Deck: game.StarterDeck(), Encounters: [][]string{{"Cultist"}}}, nil
	}
	return game.RunConfig{}, fmt.Errorf("unknown run %q", name)
}

func newTestManager() *Manager {
	return NewManager(testRuns, AgentAdvisor{Name: "rollout", Agent: agent.NewRollout(2, 20, 2)}, 0, nil)
}

func TestStartAndTake(t *testing.T) {
	m := newTestManager()
	resp, err := m.Start("", 42)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Session)
	assert.EqualValues(t, 42, resp.Seed)
	assert.NotEmpty(t, resp.Events, "fight start and draws are reported")
	require.NotEmpty(t, resp.Actions)
	assert.Equal(t, "End turn", resp.Actions[len(resp.Actions)-1].Desc)

	next, err := m.Take(resp.Session, len(resp.Actions)-1)
	require.NoError(t, err)
	assert.Equal(t, 2, next.State.Turn)
	assert.NotEmpty(t, next.Events)

	again, err := m.State(resp.Session)
	require.NoError(t, err)
	assert.Empty(t, again.Events, "events are drained once")
	assert.Equal(t, next.State, again.State)
}

func TestSameSeedSameRun(t *testing.T) {
	m := newTestManager()
	a, err := m.Start("", 7)
	require.NoError(t, err)
	b, err := m.Start("", 7)
	require.NoError(t, err)
	assert.NotEqual(t, a.Session, b.Session)
	assert.Equal(t, a.State, b.State)
	assert.Equal(t, a.Actions, b.Actions)
}

func TestTakeErrors(t *testing.T) {
	m := newTestManager()
	_, err := m.Take("missing", 0)
	assert.ErrorIs(t, err, ErrNoSession)

	resp, err := m.Start("", 1)
	require.NoError(t, err)
	_, err = m.Take(resp.Session, 99)
	assert.ErrorIs(t, err, game.ErrActionOutOfRange)
}

func TestRunToGameOver(t *testing.T) {
	m := newTestManager()
	resp, err := m.Start("glass", 3)
	require.NoError(t, err)
	for !resp.GameOver {
		resp, err = m.Take(resp.Session, len(resp.Actions)-1)
		require.NoError(t, err)
	}
	assert.False(t, resp.Won)
	assert.Equal(t, "Defeat.", resp.Result)
	assert.Empty(t, resp.Actions)

	_, err = m.Take(resp.Session, 0)
	assert.ErrorIs(t, err, game.ErrTerminal)
}

func TestSuggestDoesNotChangeRun(t *testing.T) {
	m := newTestManager()
	a, err := m.Start("", 9)
	require.NoError(t, err)
	b, err := m.Start("", 9)
	require.NoError(t, err)

	sug, err := m.Suggest(context.Background(), a.Session)
	require.NoError(t, err)
	require.NotNil(t, sug.Suggestion)
	assert.Equal(t, "rollout", sug.Suggestion.By)
	assert.Equal(t, a.Actions[sug.Suggestion.Index].Desc, sug.Suggestion.Desc)

	last := len(a.Actions) - 1
	ra, err := m.Take(a.Session, last)
	require.NoError(t, err)
	rb, err := m.Take(b.Session, last)
	require.NoError(t, err)
	assert.Equal(t, rb.State, ra.State)
}

func TestSessionsExpire(t *testing.T) {
	m := newTestManager()
	m.TTL = time.Minute
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }

	old, err := m.Start("", 1)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	fresh, err := m.Start("", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{fresh.Session}, m.Sessions())
	_, err = m.State(old.Session)
	assert.ErrorIs(t, err, ErrNoSession)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestToolHandlers(t *testing.T) {
	tools := RegisterTools(server.NewMCPServer("deckcrawl-test", "0.0.0"), newTestManager())

	res, body := callTool(t, tools.handleStartRun, map[string]any{"run": "glass", "seed": float64(5)})
	require.False(t, res.IsError, body)
	var start ToolResponse
	require.NoError(t, json.Unmarshal([]byte(body), &start))
	require.NotEmpty(t, start.Session)

	res, body = callTool(t, tools.handleTakeAction, map[string]any{"session": start.Session, "index": float64(len(start.Actions) - 1)})
	require.False(t, res.IsError, body)

	res, body = callTool(t, tools.handleGetState, map[string]any{"session": start.Session})
	require.False(t, res.IsError, body)
	var state ToolResponse
	require.NoError(t, json.Unmarshal([]byte(body), &state))
	assert.Equal(t, 2, state.State.Turn)

	res, _ = callTool(t, tools.handleTakeAction, map[string]any{"session": start.Session, "index": float64(99)})
	assert.True(t, res.IsError)

	res, _ = callTool(t, tools.handleGetState, map[string]any{})
	assert.True(t, res.IsError, "session is required")

	res, _ = callTool(t, tools.handleEndRun, map[string]any{"session": start.Session})
	assert.False(t, res.IsError)
	res, _ = callTool(t, tools.handleGetState, map[string]any{"session": start.Session})
	assert.True(t, res.IsError)
}
