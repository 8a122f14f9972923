package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"splendor/config"
	"splendor/engine"
	"splendor/experiments"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
	"splendor/searcher/agent"
)

const usage = `usage: splendor [-config file] <command> [flags]

commands:
  experiment  run an experiment between agent configurations
  play        play one game between the searching agent and an opponent
  serve       serve the searching agent over HTTP
`

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "experiment":
		err = runExperiment(cfg, args)
	case "play":
		err = play(cfg, args)
	case "serve":
		err = serve(cfg, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", flag.Arg(0))
	}
}

func runExperiment(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", cfg.Experiment.Name, "baseline, exploration or cutoff")
	games := fs.Int("games", cfg.Experiment.Games, "games per matchup")
	fs.Parse(args)

	settings := experiments.Settings{
		Games:    *games,
		Seed:     cfg.Experiment.Seed,
		Output:   cfg.Experiment.Output,
		Database: cfg.Experiment.Database,
		Search:   cfg.Options(),
	}

	var result experiments.Result
	var err error
	switch *name {
	case "baseline":
		result, err = experiments.RunBaselineExperiment(settings)
	case "exploration":
		result, err = experiments.RunExplorationExperiment(settings)
	case "cutoff":
		result, err = experiments.RunCutoffExperiment(settings)
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d games, wins %v, ties %d\n", *name, len(result.Games), result.Wins, result.Ties)
	return nil
}

func play(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	opponent := fs.String("opponent", "random", "random, mcts or the URL of an agent server")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "deal seed")
	starting := fs.Int("starting", 0, "agent to move first")
	fs.Parse(args)

	rules := game.NewStandardRules()
	agents := []agent.Agent{
		agent.NewEvaluationAgent(0, searcher.NewMCTS(rules, append(cfg.Options(), searcher.WithMetrics())...), *seed),
	}
	switch *opponent {
	case "random":
		agents = append(agents, agent.NewRandomAgent(*seed+1))
	case "mcts":
		agents = append(agents, agent.NewEvaluationAgent(1, searcher.NewMCTS(rules, append(cfg.Options(), searcher.WithSeed(*seed+1), searcher.WithMetrics())...), *seed+1))
	default:
		agents = append(agents, agent.NewRemoteAgent(1, *opponent))
	}

	e := engine.NewLocalEngine(game.NewGame(game.DefaultDeck(), *seed), rules, agents, *starting)
	gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return err
	}
	printMoves(moveMetrics)
	fmt.Printf("game %s: scores %v, winner %d after %d moves in %v\n",
		gameMetric.ID, gameMetric.Scores, gameMetric.Winner, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
	return nil
}

func printMoves(moves []metrics.MoveMetric) {
	for _, move := range moves {
		fmt.Printf("%3d agent %d: %s (%d episodes)\n", move.Step, move.Player, move.Action, move.Episodes)
	}
}

func serve(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	fs.Parse(args)

	seed := cfg.Search.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	server := agent.NewServer(game.NewStandardRules(), seed, cfg.Options()...)
	return server.ListenAndServe(*addr)
}
