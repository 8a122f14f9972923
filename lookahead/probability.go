// Package lookahead estimates how close an agent is to affording cards and
// attracting nobles.
package lookahead

import (
	"math"

	"splendor/game"
)

// NobleProbability returns, per noble on the board, the worst ratio of owned
// cards to required cards over the noble's colors. Values above 1 mean the
// requirement is exceeded.
func NobleProbability(state *game.State, agent int) []float64 {
	me := &state.Agents[agent]
	probabilities := make([]float64, 0, len(state.Board.Nobles))
	for _, noble := range state.Board.Nobles {
		probabilities = append(probabilities, ratio(me, noble.Requirement))
	}
	return probabilities
}

func ratio(me *game.AgentState, requirement game.Cost) float64 {
	worst := math.Inf(1)
	for _, req := range requirement {
		if req.Count <= 0 {
			continue
		}
		worst = math.Min(worst, float64(len(me.Cards[req.Color]))/float64(req.Count))
	}
	if math.IsInf(worst, 1) {
		return 1
	}
	return worst
}

// CardProbability estimates how affordable card is for agent holding wildcards
// spare wildcard gems. Each required color is covered first by owned cards,
// then by owned gems, then by the shared wildcard pool, walking the cost in
// order. The result is the worst coverage over the colors.
func CardProbability(state *game.State, agent int, card *game.Card, wildcards int) float64 {
	me := &state.Agents[agent]
	worst := math.Inf(1)
	for _, req := range card.Cost {
		if req.Count <= 0 {
			continue
		}
		count := req.Count
		onCard := len(me.Cards[req.Color])
		gems := me.Gems[req.Color]

		coverage := 1.0
		switch {
		case onCard >= count || gems >= count || onCard+gems >= count:
		case onCard+wildcards >= count:
			wildcards -= count - onCard
		case gems+wildcards >= count:
			wildcards -= count - gems
		case onCard+gems+wildcards >= count:
			wildcards -= count - onCard - gems
		default:
			coverage = float64(onCard+gems+wildcards) / float64(count)
			wildcards = 0
		}
		worst = math.Min(worst, coverage)
	}
	if math.IsInf(worst, 1) {
		return 1
	}
	return worst
}
