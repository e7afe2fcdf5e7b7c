package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools binds the MCP tool handlers to a session manager.
type Tools struct {
	m *Manager
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, m *Manager) *Tools {
	t := &Tools{m: m}
	s.AddTool(startRunTool(), t.handleStartRun)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(getStateTool(), t.handleGetState)
	s.AddTool(suggestActionTool(), t.handleSuggestAction)
	s.AddTool(endRunTool(), t.handleEndRun)
	return t
}

// --- Tool definitions ---

func startRunTool() mcp.Tool {
	return mcp.NewTool("start_run",
		mcp.WithDescription("Start a new deckcrawl run: a sequence of card-combat encounters. "+
			"Returns a session id, the events so far, the visible state and the numbered legal actions."),
		mcp.WithString("run", mcp.Description("Run name from the run file; empty for the default starter run")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible run; 0 or omitted picks one")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Apply one of the legal actions listed in the last response. "+
			"Returns the new events, state and actions."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id returned by start_run")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the actions list")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state, pending events and legal actions without acting. Read-only."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id returned by start_run")),
	)
}

func suggestActionTool() mcp.Tool {
	return mcp.NewTool("suggest_action",
		mcp.WithDescription("Ask the rollout search for a recommended action. Does not change the run."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id returned by start_run")),
	)
}

func endRunTool() mcp.Tool {
	return mcp.NewTool("end_run",
		mcp.WithDescription("Abandon a run and free its session."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id returned by start_run")),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return mcp.NewToolResultError("seed must be >= 0"), nil
	}
	resp, err := t.m.Start(request.GetString("run", ""), uint64(seed))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start run: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := request.GetInt("index", -1)
	resp, err := t.m.Take(id, index)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot take action %d: %v", index, err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := t.m.State(id)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleSuggestAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := t.m.Suggest(ctx, id)
	if err != nil {
		return mcp.NewToolResultErrorf("No suggestion: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleEndRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.m.End(id); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(`{"ended": true}`), nil
}
