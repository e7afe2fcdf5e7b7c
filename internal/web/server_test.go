package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	dcnet "github.com/peterkuimelis/deckcrawl/internal/net"
)

func newTestServer(t *testing.T, runFile string) *httptest.Server {
	t.Helper()
	srv, err := NewServer(Options{
		RunFile: runFile,
		Seed:    5,
		Run: game.RunConfig{
			HP:         12,
			Deck:       game.StarterDeck(),
			Encounters: [][]string{{"Cultist"}},
		},
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAPICards(t *testing.T) {
	ts := newTestServer(t, "")
	var cards []game.CardInfo
	getJSON(t, ts.URL+"/api/cards", &cards)
	require.NotEmpty(t, cards)
	assert.Equal(t, "Strike", cards[game.CardStrike].Name)
	assert.True(t, cards[game.CardStrike].Target)
}

func TestAPISpecies(t *testing.T) {
	ts := newTestServer(t, "")
	var species []SpeciesInfo
	getJSON(t, ts.URL+"/api/species", &species)
	var names []string
	for _, sp := range species {
		names = append(names, sp.Name)
		assert.LessOrEqual(t, sp.MinHP, sp.MaxHP)
	}
	assert.Contains(t, names, "Jaw Worm")
	assert.Contains(t, names, "Acid Slime (L)")
}

func TestAPIRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.yaml")
	data := "runs:\n  - name: short\n    hp: 30\n    deck: [{name: Strike, count: 3}, {name: Strike}]\n    encounters: [[Cultist]]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	ts := newTestServer(t, path)
	var runs []RunInfo
	getJSON(t, ts.URL+"/api/runs", &runs)
	require.Len(t, runs, 2)
	assert.Equal(t, "default", runs[0].Name)
	assert.Equal(t, []string{"Strike", "Defend", "Bash"}, runs[0].Cards)
	assert.Equal(t, "short", runs[1].Name)
	assert.Equal(t, []string{"Strike"}, runs[1].Cards)
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t, "")
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	start, _ := json.Marshal(connectMessage{Type: "start", Seed: 9})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, start))

	var first dcnet.ServerMessage
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &first))
	assert.Equal(t, "session", first.Type)
	assert.NotEmpty(t, first.Result)

	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var msg dcnet.ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		switch msg.Type {
		case "choose":
			answer, _ := json.Marshal(dcnet.ClientMessage{Type: "action", Index: len(msg.Actions) - 1})
			require.NoError(t, conn.Write(ctx, websocket.MessageText, answer))
		case "game_over":
			assert.False(t, msg.Won)
			return
		}
	}
}

func TestWebSocketUnknownRun(t *testing.T) {
	ts := newTestServer(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	start, _ := json.Marshal(connectMessage{Type: "start", Run: "nope"})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, start))

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var msg dcnet.ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Result, "nope")
}
