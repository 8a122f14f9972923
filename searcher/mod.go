// Package searcher chooses actions with a time-boxed Monte Carlo Tree Search
// whose expansion and rollouts are guided by the heuristic scorer.
//
// The search assumes exactly two agents taking strictly alternating turns:
// tree levels and rollout plies toggle the acting agent between 0 and 1.
package searcher

import (
	"errors"

	"splendor/experiments/metrics"
	"splendor/game"
)

var (
	// ErrInvalidInput is returned when there is no legal action to choose from.
	ErrInvalidInput = errors.New("invalid input: no legal actions")
	// ErrSearchExhausted is returned when the budget ran out before the root
	// was expanded even once.
	ErrSearchExhausted = errors.New("search exhausted: root has no children")
)

type Searcher interface {
	Search(state *game.State, agent int, legalActions []game.Action) (game.Action, metrics.SearchMetric, error)
}
