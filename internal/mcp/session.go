package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/log"
	dcnet "github.com/peterkuimelis/deckcrawl/internal/net"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// ErrNoSession is returned for unknown or expired session ids.
var ErrNoSession = errors.New("no such session")

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Session    string             `json:"session"`
	Seed       uint64             `json:"seed,omitempty"`
	Events     []dcnet.EventView  `json:"events"`
	State      *dcnet.StateView   `json:"state,omitempty"`
	Actions    []dcnet.ActionView `json:"actions,omitempty"`
	GameOver   bool               `json:"game_over"`
	Won        bool               `json:"won,omitempty"`
	Result     string             `json:"result,omitempty"`
	Suggestion *Suggestion        `json:"suggestion,omitempty"`
}

// GameSession is one run driven through MCP tool calls.
type GameSession struct {
	ID   string
	Seed uint64

	mu       sync.Mutex
	state    *game.State
	r        *rng.RNG
	events   *log.MemoryLogger
	lastUsed time.Time
}

// response builds the tool response and drains the events gathered since
// the previous call. Must be called with mu held.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{
		Session:  s.ID,
		Events:   []dcnet.EventView{},
		State:    dcnet.BuildStateView(s.state),
		GameOver: s.state.IsTerminal(),
	}
	for _, e := range s.events.Drain() {
		resp.Events = append(resp.Events, dcnet.NewEventView(e))
	}
	if resp.GameOver {
		resp.Won = s.state.Won()
		resp.Result = dcnet.ResultText(s.state)
	} else {
		resp.Actions = dcnet.BuildActionViews(s.state)
	}
	return resp
}

// Manager owns the live sessions of one MCP server.
type Manager struct {
	// Runs resolves a run name; "" means the default run.
	Runs    func(name string) (game.RunConfig, error)
	Advisor Advisor
	TTL     time.Duration // idle sessions older than this are dropped; 0 keeps them
	Logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*GameSession
	now      func() time.Time
}

// NewManager returns a manager that plays runs resolved by runs.
func NewManager(runs func(string) (game.RunConfig, error), advisor Advisor, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		Runs:     runs,
		Advisor:  advisor,
		TTL:      ttl,
		Logger:   logger,
		sessions: make(map[string]*GameSession),
		now:      time.Now,
	}
}

// Start begins a new run. A zero seed picks a random one.
func (m *Manager) Start(runName string, seed uint64) (*ToolResponse, error) {
	cfg, err := m.Runs(runName)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		if seed, err = rng.NewSeed(); err != nil {
			return nil, err
		}
	}
	events := log.NewMemoryLogger()
	cfg.Logger = events
	r := rng.New(seed)
	st, err := game.NewRun(r, cfg)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	sess := &GameSession{
		ID:     uuid.NewString(),
		Seed:   seed,
		state:  st,
		r:      r,
		events: events,
	}

	m.mu.Lock()
	m.sweep()
	sess.lastUsed = m.now()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.Logger.Info("run started", zap.String("session", sess.ID), zap.String("run", runName), zap.Uint64("seed", seed))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	resp := sess.response()
	resp.Seed = seed
	return resp, nil
}

// sweep drops idle sessions. Must be called with mu held.
func (m *Manager) sweep() {
	if m.TTL <= 0 {
		return
	}
	cutoff := m.now().Add(-m.TTL)
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			m.Logger.Info("session expired", zap.String("session", id))
		}
	}
}

func (m *Manager) get(id string) (*GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNoSession)
	}
	s.lastUsed = m.now()
	return s, nil
}

// Take applies action index to the session.
func (m *Manager) Take(id string, index int) (*ToolResponse, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Apply(s.r, index); err != nil && s.state.Err() == nil {
		return nil, err
	}
	resp := s.response()
	if resp.GameOver {
		m.Logger.Info("run finished", zap.String("session", id), zap.Bool("won", resp.Won), zap.Int("floor", s.state.Floor))
	}
	return resp, nil
}

// State returns the session state and pending events without acting.
func (m *Manager) State(id string) (*ToolResponse, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response(), nil
}

// Suggest asks the advisor for an action. The session's own RNG is not
// advanced, so suggesting never changes how the run unfolds.
func (m *Manager) Suggest(ctx context.Context, id string) (*ToolResponse, error) {
	if m.Advisor == nil {
		return nil, errors.New("no advisor configured")
	}
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsTerminal() {
		return nil, game.ErrTerminal
	}
	sug, err := m.Advisor.Advise(ctx, s.state, s.r.Clone())
	if err != nil {
		return nil, err
	}
	resp := s.response()
	resp.Suggestion = &sug
	return resp, nil
}

// End forgets a session.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %q: %w", id, ErrNoSession)
	}
	delete(m.sessions, id)
	return nil
}

// Sessions lists the live session ids in sorted order.
func (m *Manager) Sessions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
