package agent

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
)

type evaluationAgent struct {
	id       int
	searcher searcher.Searcher
	rng      *rand.Rand
}

// NewEvaluationAgent returns an agent playing as id that searches for every
// action. If the search ends without expanding the root, it falls back to a
// uniformly random legal action.
func NewEvaluationAgent(id int, s searcher.Searcher, seed uint64) Agent {
	return &evaluationAgent{id: id, searcher: s, rng: rand.New(rand.NewSource(seed))}
}

func (a *evaluationAgent) SelectAction(actions []game.Action, state *game.State) (game.Action, metrics.SearchMetric, error) {
	action, metric, err := a.searcher.Search(state, a.id, actions)
	if errors.Is(err, searcher.ErrSearchExhausted) {
		log.Warn().Msgf("agent %d: %v, falling back to a random action", a.id, err)
		return actions[a.rng.Intn(len(actions))], metric, nil
	}
	if err != nil {
		return game.Action{}, metric, fmt.Errorf("agent %d failed to select an action: %w", a.id, err)
	}
	return action, metric, nil
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent choosing uniformly among actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) SelectAction(actions []game.Action, state *game.State) (game.Action, metrics.SearchMetric, error) {
	if len(actions) == 0 {
		return game.Action{}, metrics.SearchMetric{}, searcher.ErrInvalidInput
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
