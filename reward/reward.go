// Package reward scores single actions during rollouts. It is denser than the
// raw score delta: it rewards progress towards useful cards and nobles and
// contesting cards the opponent is close to.
package reward

import (
	"splendor/game"
	"splendor/lookahead"
)

const (
	UsefulCardBonus   = 3.0
	ProgressBonus     = 3.0
	ReservedProgress  = 1.5
	ContestedBuy      = 1.5
	ContestedReserve  = 1.0
	ContestedHighCard = 2.0
	UnaffordablePen   = -3.0
	ReturnedGemPen    = -1.0
	ReturnedWildPen   = -10.0
	NobleBonus        = 5.0
)

// Thresholds on CardProbability.
const (
	opponentLikely = 0.75
	selfLikely     = 0.5
	selfUnlikely   = 0.25
)

// Model scores actions using the rules to look one action ahead.
type Model struct {
	rules game.Rules
}

func NewModel(rules game.Rules) *Model {
	return &Model{rules: rules}
}

// Reward scores action taken by agent in state.
func (m *Model) Reward(action game.Action, state *game.State, agent int) float64 {
	reward := 0.0
	opponent := game.Other(agent)
	useful := lookahead.UsefulCards(state)

	switch {
	case action.Type.IsBuy():
		reward += m.buyReward(action, state, agent, opponent, useful)
	case action.Type == game.Reserve:
		reward += m.reserveReward(action, state, agent, opponent, useful)
	case action.Type.IsCollect():
		reward += m.collectReward(action, state, agent, useful)
	}

	if action.ClaimsNoble() {
		reward += NobleBonus
	}
	return reward
}

func (m *Model) buyReward(action game.Action, state *game.State, agent, opponent int, useful []*game.Card) float64 {
	reward := 0.0
	card := action.Card

	if lookahead.Contains(useful, card) {
		reward += UsefulCardBonus
	}

	// Buying may bring nobles closer
	before := lookahead.NobleProbability(state, agent)
	after := lookahead.NobleProbability(m.rules.Successor(state, action, agent), agent)
	for i := 0; i < min(len(before), len(after)); i++ {
		if after[i] > before[i] {
			reward += ProgressBonus
		}
	}

	if lookahead.CardProbability(state, opponent, card, state.Agents[opponent].Gems[game.Yellow]) > opponentLikely {
		reward += ContestedBuy
	}

	// Pricier useful cards already within reach
	wildcards := state.Agents[agent].Gems[game.Yellow]
	for _, other := range useful {
		if other.Points > card.Points && lookahead.CardProbability(state, agent, other, wildcards) > selfLikely {
			reward += ProgressBonus
		}
	}
	return reward
}

func (m *Model) reserveReward(action game.Action, state *game.State, agent, opponent int, useful []*game.Card) float64 {
	reward := 0.0
	card := action.Card

	if lookahead.Contains(useful, card) {
		reward += UsefulCardBonus
	}

	// Useful cards within reach once the wildcard is in hand
	wildcards := state.Agents[agent].Gems[game.Yellow] + 1
	after := m.rules.Successor(state, action, agent)
	for _, other := range lookahead.UsefulCards(after) {
		if lookahead.CardProbability(after, agent, other, wildcards) > selfLikely {
			reward += ProgressBonus
		}
	}

	// Denying a card the opponent is about to buy
	if lookahead.CardProbability(state, opponent, card, state.Agents[opponent].Gems[game.Yellow]) > opponentLikely {
		reward += ContestedReserve
		if card.Points >= 3 {
			reward += ContestedHighCard
		}
	}

	if lookahead.CardProbability(state, agent, card, wildcards) < selfUnlikely {
		reward += UnaffordablePen
	}

	reward += ReturnedGemPen * float64(action.Returned.Total())
	return reward
}

func (m *Model) collectReward(action game.Action, state *game.State, agent int, useful []*game.Card) float64 {
	reward := 0.0
	wildcards := state.Agents[agent].Gems[game.Yellow]
	after := m.rules.Successor(state, action, agent)

	for _, card := range useful {
		if lookahead.CardProbability(after, agent, card, wildcards) > lookahead.CardProbability(state, agent, card, wildcards) {
			reward += ProgressBonus
		}
	}
	for _, card := range state.Agents[agent].Reserved() {
		if lookahead.CardProbability(after, agent, card, wildcards) > lookahead.CardProbability(state, agent, card, wildcards) {
			reward += ReservedProgress
		}
	}

	reward += ReturnedGemPen * float64(action.Returned.Total())
	if action.Returned[game.Yellow] > 0 {
		reward += ReturnedWildPen
	}
	return reward
}
