package mcp

import (
	"context"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Suggestion is an advisor's recommended action.
type Suggestion struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
	By    string `json:"by"`
}

// Advisor recommends an action for a live state.
type Advisor interface {
	Advise(ctx context.Context, s *game.State, r *rng.RNG) (Suggestion, error)
}

// AgentAdvisor wraps a decision agent.
type AgentAdvisor struct {
	Name  string
	Agent agent.Agent
}

func (a AgentAdvisor) Advise(ctx context.Context, s *game.State, r *rng.RNG) (Suggestion, error) {
	i, err := a.Agent.Choose(ctx, s, r)
	if err != nil {
		return Suggestion{}, err
	}
	desc, err := s.DescribeAction(i)
	if err != nil {
		return Suggestion{}, err
	}
	return Suggestion{Index: i, Desc: desc, By: a.Name}, nil
}
