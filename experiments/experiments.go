package experiments

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"splendor/engine"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
	"splendor/searcher/agent"
)

type Settings struct {
	Games    int    // Per matchup
	Seed     uint64 // Base seed for deals and agents
	Output   string // Root directory for CSV files, skipped if empty
	Database string // SQLite file, skipped if empty
	Search   []searcher.Option
}

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[int]int // Per AgentConfig.ID
	Ties  int
}

// RunBaselineExperiment pits the searching agent against the random agent,
// alternating seats.
func RunBaselineExperiment(settings Settings) (Result, error) {
	random := metrics.AgentConfig{ID: 0, Random: true}
	mcts := metrics.AgentConfig{ID: 1} // Settings.Search or the searcher defaults
	matchUps := [][]metrics.AgentConfig{{mcts, random}, {random, mcts}}

	return runExperiment("baseline", settings, []metrics.AgentConfig{random, mcts}, matchUps)
}

// RunExplorationExperiment pits the default exploration constant against
// lower and higher ones.
func RunExplorationExperiment(settings Settings) (Result, error) {
	const budget = 200 * time.Millisecond
	baseline := metrics.AgentConfig{ID: 0, Duration: budget, Exploration: searcher.Exploration}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: budget, Exploration: 0.4},
		{ID: 2, Duration: budget, Exploration: 1.4},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("exploration", settings, append(configs, baseline), matchUps)
}

// RunCutoffExperiment pits the default rollout depth against shallower ones.
func RunCutoffExperiment(settings Settings) (Result, error) {
	const budget = 200 * time.Millisecond
	baseline := metrics.AgentConfig{ID: 0, Duration: budget, Cutoff: searcher.MaxDepth}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: budget, Cutoff: 5},
		{ID: 2, Duration: budget, Cutoff: 15},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("cutoff", settings, append(configs, baseline), matchUps)
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (Result, error) {
	result := Result{Wins: map[int]int{}}
	rules := game.NewStandardRules()
	deck := game.DefaultDeck()

	log.Info().Msgf("starting %s experiment...", name)

	seed := settings.Seed
	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < settings.Games; i++ {
			seed++
			state := game.NewGame(deck, seed)
			agents := []agent.Agent{
				createAgent(0, config1, seed, rules, settings.Search),
				createAgent(1, config2, seed+1, rules, settings.Search),
			}
			e := engine.NewLocalEngine(state, rules, agents, i%game.NumPlayers)

			gameMetric, moveMetrics, err := e.Run()
			if err != nil {
				return result, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			result.Games = append(result.Games, metrics.GameRecord{
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			switch gameMetric.Winner {
			case 0:
				result.Wins[config1.ID]++
			case 1:
				result.Wins[config2.ID]++
			default:
				result.Ties++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with scores %v and winner %d", mi+1, len(matchUps), i+1, gameMetric.Scores, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment: wins %v, ties %d", name, result.Wins, result.Ties)

	if err := store(name, settings, configs, result); err != nil {
		return result, err
	}
	return result, nil
}

func store(name string, settings Settings, configs []metrics.AgentConfig, result Result) error {
	if settings.Output != "" {
		writer, err := metrics.NewWriter(settings.Output, name)
		if err != nil {
			return fmt.Errorf("failed to create experiment writer: %w", err)
		}
		if err := writer.WriteAgentConfigs(configs); err != nil {
			return fmt.Errorf("failed to store agent configs: %w", err)
		}
		if err := writer.WriteGameRecords(result.Games); err != nil {
			return fmt.Errorf("failed to write game records: %w", err)
		}
		if err := writer.WriteMoveRecords(result.Moves); err != nil {
			return fmt.Errorf("failed to write move records: %w", err)
		}
		log.Info().Msgf("stored records in %s", writer.Dir())
	}

	if settings.Database != "" {
		db, err := metrics.OpenStore(filepath.Clean(settings.Database))
		if err != nil {
			return err
		}
		defer db.Close()

		moves := map[string][]metrics.MoveRecord{}
		for _, move := range result.Moves {
			moves[move.Game] = append(moves[move.Game], move)
		}
		for _, record := range result.Games {
			if err := db.SaveGame(name, record, moves[record.ID]); err != nil {
				return err
			}
		}
		log.Info().Msgf("stored %d games in %s", len(result.Games), settings.Database)
	}
	return nil
}

func createAgent(id int, config metrics.AgentConfig, seed uint64, rules game.Rules, defaults []searcher.Option) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}

	options := append([]searcher.Option{}, defaults...)
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Discount > 0 {
		options = append(options, searcher.WithDiscount(config.Discount))
	}
	options = append(options, searcher.WithSeed(seed), searcher.WithMetrics())

	return agent.NewEvaluationAgent(id, searcher.NewMCTS(rules, options...), seed)
}
