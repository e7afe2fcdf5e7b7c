// Command deckcrawl-sim plays many seeded runs with a decision agent and
// reports win rate and depth reached.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/deckcrawl/internal/agent"
	"github.com/peterkuimelis/deckcrawl/internal/config"
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
	"github.com/peterkuimelis/deckcrawl/internal/telemetry"
)

// runResult is one simulated run.
type runResult struct {
	Seed uint64 `json:"seed"`
	agent.Result
	Error string `json:"error,omitempty"`
}

// summary aggregates a batch.
type summary struct {
	Agent      string  `json:"agent"`
	Runs       int     `json:"runs"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
	AvgFloor   float64 `json:"avg_floor"`
	AvgSteps   float64 `json:"avg_steps"`
	Errors     int     `json:"errors"`
	FloorCount []int   `json:"floor_count"` // runs that ended on each floor
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	games := flag.Int("games", 100, "number of runs to simulate")
	kind := flag.String("agent", "random", "agent: random or rollout")
	parallel := flag.Int("parallel", 4, "runs simulated at once")
	asJSON := flag.Bool("json", false, "print per-run results as JSON lines")
	flag.StringVar(&cfg.RunFile, "runs", cfg.RunFile, "path to a run file (default: built-in starter run)")
	flag.StringVar(&cfg.RunName, "run", cfg.RunName, "run name in the run file")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "batch seed (0 = random)")
	flag.IntVar(&cfg.Rollouts, "rollouts", cfg.Rollouts, "rollouts per action")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "actions per rollout")
	flag.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Maybe(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without traces", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	newAgent, err := agentFactory(*kind, cfg)
	if err != nil {
		fatal(err)
	}
	run, err := cfg.Run(nil)
	if err != nil {
		fatal(err)
	}
	seed, err := cfg.ResolveSeed()
	if err != nil {
		fatal(err)
	}
	logger.Info("simulating", zap.Int("games", *games), zap.String("agent", *kind), zap.Uint64("seed", seed))

	results := simulate(ctx, run, seed, *games, *parallel, newAgent, cfg.MaxSteps)
	enc := json.NewEncoder(os.Stdout)
	if *asJSON {
		for _, r := range results {
			enc.Encode(r)
		}
	}
	sum := summarize(*kind, len(run.Encounters), results)
	enc.SetIndent("", "  ")
	enc.Encode(sum)
}

func agentFactory(kind string, cfg config.Config) (func() agent.Agent, error) {
	switch kind {
	case "random":
		return func() agent.Agent { return agent.Random{} }, nil
	case "rollout":
		return func() agent.Agent {
			a := agent.NewRollout(cfg.Rollouts, cfg.Depth, cfg.Workers)
			a.Tracer = telemetry.Tracer("agent")
			return a
		}, nil
	}
	return nil, fmt.Errorf("unknown agent %q", kind)
}

// simulate plays games runs. Run i is seeded by the i-th draw from the batch
// seed, so results do not depend on parallelism.
func simulate(ctx context.Context, run game.RunConfig, seed uint64, games, parallel int, newAgent func() agent.Agent, maxSteps int) []runResult {
	seeds := rng.New(seed)
	results := make([]runResult, games)
	for i := range results {
		results[i].Seed = seeds.Uint64()
	}

	tracer := telemetry.Tracer("sim")
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i := range results {
		g.Go(func() error {
			ctx, span := tracer.Start(ctx, "sim.run")
			defer span.End()
			rr := &results[i]
			span.SetAttributes(attribute.Int64("seed", int64(rr.Seed)))

			r := rng.New(rr.Seed)
			s, err := game.NewRun(r, run)
			if err != nil {
				return err
			}
			res, err := agent.Play(ctx, s, r, newAgent(), maxSteps)
			rr.Result = res
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				rr.Error = err.Error()
			}
			span.SetAttributes(attribute.Bool("won", res.Won), attribute.Int("floor", res.Floor))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "simulation stopped: %v\n", err)
	}
	return results
}

func summarize(name string, floors int, results []runResult) summary {
	sum := summary{Agent: name, Runs: len(results), FloorCount: make([]int, floors+1)}
	if len(results) == 0 {
		return sum
	}
	for _, r := range results {
		if r.Error != "" {
			sum.Errors++
		}
		if r.Won {
			sum.Wins++
		}
		sum.AvgFloor += float64(r.Floor)
		sum.AvgSteps += float64(r.Steps)
		sum.FloorCount[min(r.Floor, floors)]++
	}
	n := float64(len(results))
	sum.WinRate = float64(sum.Wins) / n
	sum.AvgFloor /= n
	sum.AvgSteps /= n
	return sum
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
