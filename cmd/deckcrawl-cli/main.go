package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/config"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/log"
	dcnet "github.com/peterkuimelis/deckcrawl/internal/net"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	// .env is optional; variables may be set directly.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, cfg, os.Args[2:])
	case "watch":
		err = runWatch(ctx, cfg, os.Args[2:])
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  deckcrawl play  [--runs FILE] [--run NAME] [--seed N]")
	fmt.Println("  deckcrawl watch [--runs FILE] [--run NAME] [--seed N] [--agent random|rollout]")
	fmt.Println("  deckcrawl host  [--runs FILE] [--run NAME] [--seed N] [--addr ADDR]")
	fmt.Println("  deckcrawl join  [--addr ADDR] [--name NAME]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a run in this terminal")
	fmt.Println("  watch   Watch an agent play a run")
	fmt.Println("  host    Serve runs to remote players over TCP")
	fmt.Println("  join    Connect to a host and play")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// runFlags registers the flags shared by commands that start a run.
func runFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.RunFile, "runs", cfg.RunFile, "path to a run file (default: built-in starter run)")
	fs.StringVar(&cfg.RunName, "run", cfg.RunName, "run name in the run file (default: first)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 = random)")
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	runFlags(fs, &cfg)
	fs.Parse(args)

	run, err := cfg.Run(nil)
	if err != nil {
		return err
	}
	seed, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}
	fmt.Printf("Seed %d\n", seed)
	srv := &dcnet.Server{Run: run}
	return srv.PlayLocal(ctx, seed, os.Stdin, os.Stdout)
}

func runWatch(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	runFlags(fs, &cfg)
	kind := fs.String("agent", "rollout", "agent to watch: random or rollout")
	fs.Parse(args)

	var a agent.Agent
	switch *kind {
	case "random":
		a = agent.Random{}
	case "rollout":
		a = agent.NewRollout(cfg.Rollouts, cfg.Depth, cfg.Workers)
	default:
		return fmt.Errorf("unknown agent %q", *kind)
	}

	run, err := cfg.Run(nil)
	if err != nil {
		return err
	}
	seed, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}
	run.Logger = log.NewTextLogger(os.Stdout)
	r := rng.New(seed)
	s, err := game.NewRun(r, run)
	if err != nil {
		return err
	}
	res, err := agent.Play(ctx, s, r, a, cfg.MaxSteps)
	fmt.Printf("\nSeed %d: %s (floor %d, HP %d, %d actions)\n", seed, dcnet.ResultText(s), res.Floor+1, res.HP, res.Steps)
	return err
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	runFlags(fs, &cfg)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "TCP address to listen on")
	fs.Parse(args)

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	run, err := cfg.Run(nil)
	if err != nil {
		return err
	}
	seed, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}
	srv := &dcnet.Server{Addr: cfg.Addr, Run: run, Seed: seed, Logger: logger}
	logger.Info("hosting", zap.String("run_file", cfg.RunFile), zap.String("run", cfg.RunName))
	return srv.ListenAndServe(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost"+cfg.Addr, "server address to connect to")
	name := fs.String("name", os.Getenv("USER"), "player name")
	fs.Parse(args)

	return dcnet.Connect(ctx, *addr, *name)
}
