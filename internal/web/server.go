package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	dcnet "github.com/peterkuimelis/deckcrawl/internal/net"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

//go:embed static
var staticFiles embed.FS

// SpeciesInfo is the JSON representation of a species for /api/species.
type SpeciesInfo struct {
	Name   string   `json:"name"`
	MinHP  int      `json:"minHp"`
	MaxHP  int      `json:"maxHp"`
	States []string `json:"states"`
}

// RunInfo is the JSON representation of a run for /api/runs.
type RunInfo struct {
	Name       string     `json:"name"`
	HP         int        `json:"hp"`
	Cards      []string   `json:"cards"`
	Encounters [][]string `json:"encounters"`
}

// Options configures a Server.
type Options struct {
	RunFile string         // optional run file listed by /api/runs and playable by name
	Run     game.RunConfig // run played when the browser does not name one
	Seed    uint64         // 0 seeds every session randomly
	Logger  *zap.Logger
}

// Server is the deckcrawl web UI server.
type Server struct {
	opts     Options
	catalog  game.Catalog
	bestiary *game.Bestiary
	mux      *http.ServeMux
	log      *zap.Logger
	sessions atomic.Int64

	seedMu sync.Mutex
	seeds  *rng.RNG
}

// NewServer creates a new web server.
func NewServer(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Run.Catalog == nil {
		opts.Run.Catalog = game.DefaultCatalog()
	}
	if opts.Run.Bestiary == nil {
		opts.Run.Bestiary = game.DefaultBestiary()
	}
	if opts.RunFile != "" {
		if _, err := os.Stat(opts.RunFile); err != nil {
			return nil, fmt.Errorf("run file: %w", err)
		}
	}
	seed := opts.Seed
	if seed == 0 {
		var err error
		if seed, err = rng.NewSeed(); err != nil {
			return nil, err
		}
	}
	s := &Server{
		opts:     opts,
		catalog:  opts.Run.Catalog,
		bestiary: opts.Run.Bestiary,
		mux:      http.NewServeMux(),
		log:      opts.Logger,
		seeds:    rng.New(seed),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/species", s.handleSpecies)
	s.mux.HandleFunc("GET /api/runs", s.handleRuns)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if lib, ok := s.catalog.(*game.CardLibrary); ok {
		writeJSON(w, lib.Infos())
		return
	}
	http.Error(w, "catalog cannot be listed", http.StatusNotImplemented)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	var out []SpeciesInfo
	for _, name := range s.bestiary.Names() {
		sp, _ := s.bestiary.Lookup(name)
		out = append(out, SpeciesInfo{
			Name:   sp.Name,
			MinHP:  sp.HP[0],
			MaxHP:  sp.HP[1],
			States: sp.StateNames(),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs := []RunInfo{runInfo("default", s.opts.Run.HP, s.opts.Run.Encounters, s.cardNames(s.opts.Run.Deck))}
	if s.opts.RunFile != "" {
		data, err := os.ReadFile(s.opts.RunFile)
		if err != nil {
			http.Error(w, "could not read run file", http.StatusInternalServerError)
			return
		}
		rf, err := parseRunFileYAML(data)
		if err != nil {
			http.Error(w, "could not parse run file", http.StatusInternalServerError)
			return
		}
		for _, e := range rf.Runs {
			var cards []string
			for _, c := range e.Deck {
				cards = append(cards, c.Name)
			}
			runs = append(runs, runInfo(e.Name, e.HP, e.Encounters, cards))
		}
	}
	writeJSON(w, runs)
}

func runInfo(name string, hp int, encounters [][]string, cards []string) RunInfo {
	seen := make(map[string]bool)
	ri := RunInfo{Name: name, HP: hp, Encounters: encounters}
	for _, c := range cards {
		if !seen[c] {
			ri.Cards = append(ri.Cards, c)
			seen[c] = true
		}
	}
	return ri
}

func (s *Server) cardNames(deck []game.Card) []string {
	out := make([]string, len(deck))
	for i, c := range deck {
		out[i] = s.catalog.Name(c)
	}
	return out
}

// runConfig resolves the run the browser asked for.
func (s *Server) runConfig(name string) (game.RunConfig, error) {
	if name == "" || name == "default" {
		return s.opts.Run, nil
	}
	if s.opts.RunFile == "" {
		return game.RunConfig{}, fmt.Errorf("unknown run %q", name)
	}
	return game.LoadRun(s.opts.RunFile, name, s.catalog)
}

// connectMessage is the browser's first message on /ws. Type "start" plays
// in-process; type "connect" proxies to a TCP game server at Addr.
type connectMessage struct {
	Type string `json:"type"`
	Run  string `json:"run,omitempty"`
	Seed uint64 `json:"seed,omitempty"`
	Addr string `json:"addr,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	id := uuid.NewString()
	lg := s.log.With(zap.String("session", id))

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		lg.Warn("websocket read connect", zap.Error(err))
		return
	}
	var cm connectMessage
	if err := json.Unmarshal(connectData, &cm); err != nil || (cm.Type != "start" && cm.Type != "connect") {
		wsConn.Close(websocket.StatusPolicyViolation, "expected start or connect message")
		return
	}

	var tcpConn net.Conn
	switch cm.Type {
	case "connect":
		tcpConn, err = net.Dial("tcp", cm.Addr)
		if err != nil {
			s.wsError(ctx, wsConn, fmt.Sprintf("Could not connect to game server at %s: %v", cm.Addr, err))
			return
		}
	case "start":
		cfg, err := s.runConfig(cm.Run)
		if err != nil {
			s.wsError(ctx, wsConn, err.Error())
			return
		}
		seed := cm.Seed
		if seed == 0 {
			seed = s.nextSeed()
		}
		var serverConn net.Conn
		tcpConn, serverConn = net.Pipe()
		srv := &dcnet.Server{Run: cfg, Logger: lg}
		go func() {
			defer serverConn.Close()
			res, err := srv.Serve(ctx, serverConn, seed)
			if err != nil {
				lg.Warn("session ended with error", zap.Error(err))
				return
			}
			lg.Info("session finished", zap.Bool("won", res.Won), zap.Int("floor", res.Floor))
		}()
		lg.Info("session started", zap.String("run", cm.Run), zap.Uint64("seed", seed), zap.Int64("active", s.sessions.Add(1)))
		defer s.sessions.Add(-1)
	}
	defer tcpConn.Close()

	hello, _ := json.Marshal(map[string]string{"type": "session", "result": id})
	if err := wsConn.Write(ctx, websocket.MessageText, hello); err != nil {
		return
	}
	if err := json.NewEncoder(tcpConn).Encode(dcnet.ClientMessage{Type: "join", Name: id}); err != nil {
		lg.Warn("write join", zap.Error(err))
		return
	}
	s.bridge(ctx, lg, wsConn, tcpConn)
}

func (s *Server) nextSeed() uint64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeds.Uint64()
}

func (s *Server) wsError(ctx context.Context, wsConn *websocket.Conn, text string) {
	msg, _ := json.Marshal(dcnet.ServerMessage{Type: "error", Result: text})
	wsConn.Write(ctx, websocket.MessageText, msg)
	wsConn.Close(websocket.StatusNormalClosure, "connection failed")
}

// bridge copies game-server messages to the browser and browser answers to
// the game server until the server side ends.
func (s *Server) bridge(ctx context.Context, lg *zap.Logger, wsConn *websocket.Conn, tcpConn net.Conn) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					lg.Debug("game read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				lg.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				tcpConn.Close()
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				lg.Debug("game write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
