package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/config"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	dcmcp "github.com/peterkuimelis/deckcrawl/internal/mcp"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	flag.StringVar(&cfg.RunFile, "runs", cfg.RunFile, "path to a run file (default: built-in starter run)")
	flag.IntVar(&cfg.Rollouts, "rollouts", cfg.Rollouts, "rollouts per action for suggest_action")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "actions per rollout for suggest_action")
	flag.Parse()

	// stdout carries the MCP protocol, so process logs go to stderr.
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	runs := func(name string) (game.RunConfig, error) {
		if name == "" && cfg.RunFile == "" {
			return game.DefaultRunConfig(), nil
		}
		c := cfg
		c.RunName = name
		return c.Run(nil)
	}
	advisor := dcmcp.AgentAdvisor{
		Name:  "rollout",
		Agent: agent.NewRollout(cfg.Rollouts, cfg.Depth, cfg.Workers),
	}
	m := dcmcp.NewManager(runs, advisor, cfg.SessionTTL, logger)

	s := server.NewMCPServer("deckcrawl", "1.0.0")
	dcmcp.RegisterTools(s, m)

	if err := server.ServeStdio(s); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
