package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckcrawl/internal/config"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	flag.StringVar(&cfg.WebAddr, "addr", cfg.WebAddr, "HTTP address to listen on")
	flag.StringVar(&cfg.RunFile, "runs", cfg.RunFile, "path to a run file listed in the UI")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for session seeds (0 = random)")
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	// The default run is always the built-in one; named runs come from the file.
	srv, err := web.NewServer(web.Options{
		RunFile: cfg.RunFile,
		Run:     game.DefaultRunConfig(),
		Seed:    cfg.Seed,
		Logger:  logger,
	})
	if err != nil {
		fatal(err)
	}

	logger.Info("deckcrawl web UI listening", zap.String("addr", cfg.WebAddr))
	if err := srv.ListenAndServe(cfg.WebAddr); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
