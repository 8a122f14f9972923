package searcher

import "splendor/game"

var winningCard = &game.Card{ID: 99, Tier: 3, Color: game.Red, Points: 5}

func collect(c game.Color) game.Action {
	var gems game.Gems
	gems[c] = 2
	return game.Action{Type: game.CollectSame, Collected: gems}
}

func buyWinning() game.Action {
	return game.Action{Type: game.BuyAvailable, Card: winningCard}
}

// mockRules is a race to one winning purchase: every agent may collect gems
// that change nothing, or buy the winning card and reach the winning score.
type mockRules struct {
	canWin  [game.NumPlayers]bool
	mustWin bool // agents that can win have no other action
}

func (r mockRules) LegalActions(state *game.State, agent int) []game.Action {
	if r.mustWin && r.canWin[agent] {
		return []game.Action{buyWinning()}
	}
	actions := []game.Action{collect(game.Green), collect(game.Blue), collect(game.White)}
	if r.canWin[agent] {
		actions = append(actions, buyWinning())
	}
	return actions
}

func (r mockRules) Successor(state *game.State, action game.Action, agent int) *game.State {
	next := state.Copy()
	if action.Type.IsBuy() {
		next.Agents[agent].Score += game.WinningScore
	}
	next.Turns++
	return next
}

func (r mockRules) GameEnds(state *game.State) bool {
	for _, agent := range state.Agents {
		if agent.Score >= game.WinningScore {
			return true
		}
	}
	return false
}

func emptyState() *game.State {
	state := &game.State{}
	for i := range state.Agents {
		state.Agents[i].ID = i
	}
	return state
}
