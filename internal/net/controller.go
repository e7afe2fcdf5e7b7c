package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// NetworkController is an agent.Agent whose decisions come from a TCP peer.
// It also implements log.EventLogger so combat events reach the peer as they
// happen.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex

	log.MemoryLogger
	sendErr error // first failed notify
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// Choose sends the current state and actions and waits for the peer's pick.
// An out-of-range answer is sent back as an error and asked again.
func (nc *NetworkController) Choose(ctx context.Context, s *game.State, _ *rng.RNG) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.sendErr != nil {
		return 0, nc.sendErr
	}

	actions := BuildActionViews(s)
	msg := ServerMessage{
		Type:    "choose",
		State:   BuildStateView(s),
		Actions: actions,
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := nc.send(msg); err != nil {
			return 0, fmt.Errorf("send choose: %w", err)
		}
		resp, err := nc.recv()
		if err != nil {
			return 0, fmt.Errorf("recv action: %w", err)
		}
		if resp.Type == "action" && resp.Index >= 0 && resp.Index < len(actions) {
			return resp.Index, nil
		}
		if err := nc.send(ServerMessage{Type: "error", Result: fmt.Sprintf("choose an action between 0 and %d", len(actions)-1)}); err != nil {
			return 0, fmt.Errorf("send error: %w", err)
		}
	}
}

// Log numbers the event and forwards it to the peer. Delivered events are
// not retained.
func (nc *NetworkController) Log(event log.GameEvent) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.MemoryLogger.Log(event)
	event = nc.LastEvent()
	nc.Drain()
	if nc.sendErr != nil {
		return
	}
	ev := NewEventView(event)
	if err := nc.send(ServerMessage{Type: "notify", Event: &ev}); err != nil {
		nc.sendErr = fmt.Errorf("send notify: %w", err)
	}
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(s *game.State) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{
		Type:   "game_over",
		State:  BuildStateView(s),
		Won:    s.Won(),
		Result: ResultText(s),
	})
}
