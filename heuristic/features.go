// Package heuristic ranks candidate actions with a hand-tuned, phase dependent
// weighted sum of board features.
package heuristic

import "splendor/game"

// Snapshot is the compact view of one agent's position the features read.
// It is rebuilt for every state and never cached.
type Snapshot struct {
	Score  int
	Gems   game.Gems   // owned gems plus owned cards of each color
	Cards  game.Gems   // owned cards only; Yellow counts reserved cards
	Nobles []game.Gems // card requirement of each noble still on the board
}

// Estimate is the resource delta an action is predicted to produce.
type Estimate struct {
	Score     int       // points gained, nobles included
	Gems      game.Gems // signed gem delta
	CardScore int       // points printed on the card gained
	Cards     game.Gems // cards gained per color
}

// BuildSnapshot reads agent's gems, cards and the board's nobles from state.
func BuildSnapshot(state *game.State, agent int) Snapshot {
	me := &state.Agents[agent]
	snapshot := Snapshot{
		Score:  me.Score,
		Nobles: make([]game.Gems, 0, len(state.Board.Nobles)),
	}
	for _, c := range game.Colors {
		cards := len(me.Cards[c])
		snapshot.Gems[c] = me.Gems[c] + cards
		snapshot.Cards[c] = cards
	}
	for _, noble := range state.Board.Nobles {
		var requirement game.Gems
		for _, req := range noble.Requirement {
			requirement[req.Color] = req.Count
		}
		snapshot.Nobles = append(snapshot.Nobles, requirement)
	}
	return snapshot
}

// EstimateAction predicts an action's rewards from the action alone.
func EstimateAction(action game.Action) Estimate {
	var est Estimate

	switch {
	case action.Type == game.Reserve:
		est.Gems[game.Yellow] = 1
	case action.Type.IsBuy():
		est.Score += action.Card.Points
		est.CardScore = action.Card.Points
		est.Cards[action.Card.Color] = 1
		for _, c := range game.Colors {
			est.Gems[c] = -action.Returned[c]
		}
	case action.Type.IsCollect():
		for _, c := range game.Colors {
			est.Gems[c] = action.Collected[c] - action.Returned[c]
		}
	}

	if action.ClaimsNoble() {
		est.Score += game.NoblePoints
	}
	return est
}

// endgameUrgency is the remaining distance to the winning score after the
// action, as a fraction of the winning score.
func endgameUrgency(s Snapshot, e Estimate) float64 {
	return 1 - float64(s.Score+e.Score)/game.WinningScore
}

// gemEconomy penalises spending gems (eight times as much as it rewards
// collecting them), softened by the card and points the spending buys.
func gemEconomy(e Estimate) float64 {
	change := 0
	for _, c := range game.GemColors {
		if v := e.Gems[c]; v >= 0 {
			change += v
		} else {
			change += 8 * v
		}
	}
	cards := e.Cards.Total()
	income := max(1, e.CardScore+1)
	denominator := max(1, cards+1)

	gemChange := float64(change)
	return -(gemChange/float64(income) + gemChange/float64(denominator)) / 20
}

func cardDiversity(s Snapshot) float64 {
	score := 0
	for _, n := range s.Cards {
		if n > 2 {
			score -= n - 2
		} else {
			score++
		}
	}
	return float64(score)
}

func gemDiversity(s Snapshot, e Estimate) float64 {
	total := 0
	for _, c := range game.GemColors {
		total += 4 - s.Gems[c]
	}
	future := s.Cards.Add(e.Cards)
	futureCards := 0
	for _, c := range game.GemColors {
		futureCards += future[c]
	}
	return float64(total)/float64(futureCards+1) + 2*float64(future[game.Yellow])
}

func nobleAttraction(s Snapshot, e Estimate) float64 {
	future := s.Cards.Add(e.Cards)
	shortfall := 0
	for _, noble := range s.Nobles {
		for _, c := range game.Colors {
			if missing := noble[c] - future[c]; missing > 0 {
				shortfall += missing
			}
		}
	}
	return float64(shortfall) / 9
}
