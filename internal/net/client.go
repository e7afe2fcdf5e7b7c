package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a server, joins and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, os.Stdin, os.Stdout)
	if err := c.Join(name); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Connected! Waiting for the run to start...")
	return c.RunREPL(ctx)
}

// Join sends the handshake.
func (c *Client) Join(name string) error {
	if err := json.NewEncoder(c.conn).Encode(ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "error":
			fmt.Fprintf(c.out, "Server: %s\n", msg.Result)

		case "game_over":
			c.renderState(msg.State)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "            RUN OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	phase := ev.Phase
	for len(phase) < 12 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	for _, e := range sv.Enemies {
		fmt.Fprintf(w, "║  [%d] %s  HP %d/%d  Block %d%s\n", e.Slot, e.Name, e.HP, e.MaxHP, e.Block, formatStatuses(e.Statuses))
		fmt.Fprintf(w, "║      intends: %s\n", e.Intent)
	}
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	p := sv.Player
	fmt.Fprintf(w, "║  YOU  HP %d/%d  Block %d  Energy %d%s\n", p.HP, p.MaxHP, p.Block, p.Energy, formatStatuses(p.Statuses))
	fmt.Fprintf(w, "║  Draw %d  Discard %d  Exhaust %d  Deck %d\n", p.DrawCount, p.DiscardCount, p.ExhaustCount, p.DeckSize)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(w, "Floor %d/%d | Turn %d | %s\n", sv.Floor+1, sv.Encounters, sv.Turn, sv.Choice)

	if len(p.Hand) > 0 {
		fmt.Fprint(w, "\nHand: ")
		for _, name := range p.Hand {
			fmt.Fprintf(w, "[%s] ", name)
		}
		fmt.Fprintln(w)
	}
	if sv.Prompt != "" {
		fmt.Fprintf(w, "\n%s which card?\n", sv.Prompt)
	}
}

func formatStatuses(st map[string]int) string {
	if len(st) == 0 {
		return ""
	}
	names := make([]string, 0, len(st))
	for name := range st {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s %d", name, st[name])
	}
	return sb.String()
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

// readChoice reads a 1-based choice and returns it 0-based.
func (c *Client) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}
