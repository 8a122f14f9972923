package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher/agent"
)

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	State    *game.State
	Rules    game.Rules
	Agents   [game.NumPlayers]agent.Agent
	Starting int
	MaxMoves int
}

func NewLocalEngine(state *game.State, rules game.Rules, agents []agent.Agent, starting int) *LocalEngine {
	if len(agents) != game.NumPlayers {
		panic("need exactly two agents")
	}
	return &LocalEngine{
		State:    state,
		Rules:    rules,
		Agents:   [game.NumPlayers]agent.Agent{agents[0], agents[1]},
		Starting: starting,
		MaxMoves: MaxMoves,
	}
}

// Run executes the game loop. Once an agent reaches the winning score the
// current round is completed so both agents get the same number of turns.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.New().String(),
		StartingPlayer: e.Starting,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Debug().Msgf("game %s: agent %d is starting", gameMetric.ID, e.Starting)

	current := e.Starting
	passes := 0
	step := 0
	for ; step < e.MaxMoves; step++ {
		if current == e.Starting && e.Rules.GameEnds(e.State) {
			break
		}

		actions := e.Rules.LegalActions(e.State, current)
		if len(actions) == 0 {
			log.Debug().Msgf("game %s: agent %d has no legal actions, passing", gameMetric.ID, current)
			passes++
			if passes >= game.NumPlayers { // Nobody can move
				break
			}
			current = game.Other(current)
			continue
		}
		passes = 0

		action, searchMetric, err := e.Agents[current].SelectAction(actions, e.State)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}
		if !contains(actions, action) {
			log.Warn().Msgf("game %s: agent %d returned an illegal action %v, forcing the first legal action", gameMetric.ID, current, action)
			action = actions[0]
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current,
			Action:       action.String(),
			SearchMetric: searchMetric,
		})

		e.State = e.Rules.Successor(e.State, action, current)
		current = game.Other(current)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = -1
	if winner, ok := e.State.Winner(); ok {
		gameMetric.Winner = winner
	}
	for i := range e.State.Agents {
		gameMetric.Scores[i] = e.State.Agents[i].Score
	}

	log.Debug().Msgf("game %s over after %d moves: scores %v, winner %d", gameMetric.ID, gameMetric.TotalMoves, gameMetric.Scores, gameMetric.Winner)
	return gameMetric, moveMetrics, nil
}

func contains(actions []game.Action, action game.Action) bool {
	for _, a := range actions {
		if a.Equal(action) {
			return true
		}
	}
	return false
}
