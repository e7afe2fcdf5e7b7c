package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Server hosts runs for TCP clients. Every connection plays its own run of
// the same configuration; sessions are seeded from Seed in accept order.
type Server struct {
	Addr   string
	Run    game.RunConfig
	Seed   uint64
	Logger *zap.Logger
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ListenAndServe accepts clients until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	lg := s.logger()
	lg.Info("waiting for players", zap.String("addr", ln.Addr().String()), zap.Uint64("seed", s.Seed))
	seeds := rng.New(s.Seed)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		seed := seeds.Uint64()
		go func() {
			defer conn.Close()
			lg := lg.With(zap.String("remote", conn.RemoteAddr().String()), zap.Uint64("seed", seed))
			lg.Info("player connected")
			res, err := s.Serve(ctx, conn, seed)
			if err != nil {
				lg.Warn("session ended with error", zap.Error(err))
				return
			}
			lg.Info("session finished", zap.Bool("won", res.Won), zap.Int("floor", res.Floor), zap.Int("steps", res.Steps))
		}()
	}
}

// Serve runs one session over conn: it waits for the join message, plays the
// run with the peer making every decision and finishes with game_over.
func (s *Server) Serve(ctx context.Context, conn net.Conn, seed uint64) (agent.Result, error) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	nc := NewNetworkController(conn)
	join, err := nc.recv()
	if err != nil {
		return agent.Result{}, fmt.Errorf("read join message: %w", err)
	}
	if join.Type != "join" {
		return agent.Result{}, fmt.Errorf("expected join message, got %q", join.Type)
	}

	cfg := s.Run
	cfg.Logger = nc
	r := rng.New(seed)
	st, err := game.NewRun(r, cfg)
	if err != nil {
		_ = nc.send(ServerMessage{Type: "error", Result: err.Error()})
		return agent.Result{}, fmt.Errorf("start run: %w", err)
	}

	res, err := agent.Play(ctx, st, r, nc, 0)
	if err != nil && !errors.Is(err, game.ErrTerminal) && st.Err() == nil {
		return res, err
	}
	if err := nc.SendGameOver(st); err != nil {
		return res, fmt.Errorf("send game_over: %w", err)
	}
	return res, nil
}

// PlayLocal runs a session in-process, with the REPL client on in and out.
func (s *Server) PlayLocal(ctx context.Context, seed uint64, in io.Reader, out io.Writer) error {
	hostConn, serverConn := net.Pipe()
	defer hostConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		_, err := s.Serve(ctx, serverConn, seed)
		errCh <- err
	}()

	client := NewClient(hostConn, in, out)
	if err := client.Join("local"); err != nil {
		return err
	}
	if err := client.RunREPL(ctx); err != nil {
		return err
	}
	return <-errCh
}
