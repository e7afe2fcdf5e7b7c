package net

// Message types for the JSON protocol over TCP. The same views are reused by
// the web and MCP front ends.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "notify", "choose", "game_over" or "error"

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose" and "game_over"
	State   *StateView   `json:"state,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`

	// For "game_over" and "error"
	Won    bool   `json:"won,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a combat event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// StateView is the externally visible session state.
type StateView struct {
	Choice     string      `json:"choice"`
	Prompt     string      `json:"prompt,omitempty"`
	Floor      int         `json:"floor"`
	Encounters int         `json:"encounters"`
	Turn       int         `json:"turn"`
	Player     PlayerView  `json:"player"`
	Enemies    []EnemyView `json:"enemies,omitempty"`
	Rewards    []string    `json:"rewards,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// PlayerView shows the player's side of the fight.
type PlayerView struct {
	HP           int            `json:"hp"`
	MaxHP        int            `json:"max_hp"`
	Block        int            `json:"block"`
	Energy       int            `json:"energy"`
	Statuses     map[string]int `json:"statuses,omitempty"`
	Hand         []string       `json:"hand,omitempty"`
	DrawCount    int            `json:"draw_count"`
	DiscardCount int            `json:"discard_count"`
	ExhaustCount int            `json:"exhaust_count"`
	DeckSize     int            `json:"deck_size"` // master deck
}

// EnemyView describes a living enemy.
type EnemyView struct {
	Slot     int            `json:"slot"`
	Name     string         `json:"name"`
	HP       int            `json:"hp"`
	MaxHP    int            `json:"max_hp"`
	Block    int            `json:"block"`
	Statuses map[string]int `json:"statuses,omitempty"`
	Intent   string         `json:"intent"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "join" or "action"

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`
}
