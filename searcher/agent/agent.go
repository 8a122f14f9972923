package agent

import (
	"splendor/experiments/metrics"
	"splendor/game"
)

type Agent interface {
	// SelectAction returns one of actions for the agent's turn in state, and
	// performance metrics (if collected) from the search process
	SelectAction(actions []game.Action, state *game.State) (game.Action, metrics.SearchMetric, error)
}
