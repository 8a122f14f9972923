package game

import "fmt"

// StandardRules implements the two-player base game.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) GameEnds(s *State) bool {
	for i := range s.Agents {
		if s.Agents[i].Score >= WinningScore {
			return true
		}
	}
	return false
}

func (sr *StandardRules) LegalActions(s *State, agent int) []Action {
	me := &s.Agents[agent]
	bank := s.Board.Gems
	actions := []Action{}

	// Up to three gems of different colors
	available := []Color{}
	for _, c := range GemColors {
		if bank[c] > 0 {
			available = append(available, c)
		}
	}
	for _, combo := range combinations(available, min(3, len(available))) {
		if len(combo) == 0 {
			continue
		}
		var collected Gems
		for _, c := range combo {
			collected[c] = 1
		}
		actions = append(actions, sr.withReturns(me, Action{Type: CollectDiff, Collected: collected})...)
	}

	// Two gems of the same color from a pile of at least four
	for _, c := range GemColors {
		if bank[c] >= 4 {
			var collected Gems
			collected[c] = 2
			actions = append(actions, sr.withReturns(me, Action{Type: CollectSame, Collected: collected})...)
		}
	}

	// Reserve a face-up card, taking a wildcard if any remain
	if len(me.Reserved()) < MaxReserved {
		for _, card := range s.Board.DealtList() {
			action := Action{Type: Reserve, Card: card}
			if bank[Yellow] > 0 {
				action.Collected[Yellow] = 1
			}
			actions = append(actions, sr.withReturns(me, action)...)
		}
	}

	// Buy a face-up or reserved card
	for _, card := range s.Board.DealtList() {
		if payment, ok := Payment(me, card); ok {
			actions = append(actions, Action{Type: BuyAvailable, Card: card, Returned: payment})
		}
	}
	for _, card := range me.Reserved() {
		if payment, ok := Payment(me, card); ok {
			actions = append(actions, Action{Type: BuyReserve, Card: card, Returned: payment})
		}
	}

	withNobles := make([]Action, 0, len(actions))
	for _, action := range actions {
		withNobles = append(withNobles, sr.withNobles(s, me, action)...)
	}
	return withNobles
}

// Payment computes the gems an agent hands back to buy card: owned cards
// discount their color, then gems of the color, then wildcards.
func Payment(me *AgentState, card *Card) (Gems, bool) {
	var payment Gems
	for _, req := range card.Cost {
		need := req.Count - len(me.Cards[req.Color])
		if need <= 0 {
			continue
		}
		paid := min(need, me.Gems[req.Color])
		payment[req.Color] = paid
		payment[Yellow] += need - paid
	}
	if payment[Yellow] > me.Gems[Yellow] {
		return Gems{}, false
	}
	return payment, true
}

// withReturns expands an action that would leave the agent above MaxGems into
// one action per way of handing back the excess.
func (sr *StandardRules) withReturns(me *AgentState, action Action) []Action {
	holding := me.Gems.Add(action.Collected)
	excess := holding.Total() - MaxGems
	if excess <= 0 {
		return []Action{action}
	}
	actions := []Action{}
	for _, returned := range returnCombinations(holding, excess, 0) {
		a := action
		a.Returned = returned
		actions = append(actions, a)
	}
	return actions
}

func (sr *StandardRules) withNobles(s *State, me *AgentState, action Action) []Action {
	counts := me.CardCounts()
	if action.Type.IsBuy() {
		counts[action.Card.Color]++
	}
	actions := []Action{}
	for _, noble := range s.Board.Nobles {
		if qualifies(counts, noble) {
			a := action
			a.Noble = noble
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return []Action{action}
	}
	return actions
}

func qualifies(counts Gems, noble *Noble) bool {
	for _, req := range noble.Requirement {
		if counts[req.Color] < req.Count {
			return false
		}
	}
	return true
}

func (sr *StandardRules) Successor(s *State, action Action, agent int) *State {
	next := s.Copy()
	me := &next.Agents[agent]
	board := &next.Board

	switch action.Type {
	case CollectSame, CollectDiff:
	case Reserve:
		board.take(action.Card)
		me.Cards[Yellow] = append(me.Cards[Yellow], action.Card)
	case BuyAvailable:
		board.take(action.Card)
		me.buy(action.Card)
	case BuyReserve:
		me.unreserve(action.Card)
		me.buy(action.Card)
	default:
		panic(fmt.Sprintf("unexpected action type %v", action.Type))
	}

	me.Gems = me.Gems.Add(action.Collected).Sub(action.Returned)
	board.Gems = board.Gems.Sub(action.Collected).Add(action.Returned)

	if action.Noble != nil {
		for i, noble := range board.Nobles {
			if noble.ID == action.Noble.ID {
				board.Nobles = append(board.Nobles[:i], board.Nobles[i+1:]...)
				me.Nobles = append(me.Nobles, noble)
				me.Score += noble.Points
				break
			}
		}
	}

	next.Turns++
	return next
}

// take removes a face-up card and refills its slot from the tier's deck.
func (b *Board) take(card *Card) {
	for tier := range b.Dealt {
		for i, dealt := range b.Dealt[tier] {
			if dealt.ID != card.ID {
				continue
			}
			if len(b.Decks[tier]) > 0 {
				b.Dealt[tier][i] = b.Decks[tier][0]
				b.Decks[tier] = b.Decks[tier][1:]
			} else {
				b.Dealt[tier] = append(b.Dealt[tier][:i], b.Dealt[tier][i+1:]...)
			}
			return
		}
	}
	panic(fmt.Sprintf("card %d is not on the board", card.ID))
}

func (a *AgentState) buy(card *Card) {
	a.Cards[card.Color] = append(a.Cards[card.Color], card)
	a.Score += card.Points
}

func (a *AgentState) unreserve(card *Card) {
	reserved := a.Cards[Yellow]
	for i, r := range reserved {
		if r.ID == card.ID {
			a.Cards[Yellow] = append(reserved[:i], reserved[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("card %d is not reserved", card.ID))
}

// combinations returns every k-subset of colors, preserving order.
func combinations(colors []Color, k int) [][]Color {
	if k == 0 {
		return [][]Color{{}}
	}
	if len(colors) < k {
		return nil
	}
	result := [][]Color{}
	for _, rest := range combinations(colors[1:], k-1) {
		result = append(result, append([]Color{colors[0]}, rest...))
	}
	return append(result, combinations(colors[1:], k)...)
}

// returnCombinations lists every multiset of n gems that can be drawn from
// holding, walking colors from index from.
func returnCombinations(holding Gems, n int, from int) []Gems {
	if n == 0 {
		return []Gems{{}}
	}
	result := []Gems{}
	for i := from; i < NumColors; i++ {
		if holding[i] == 0 {
			continue
		}
		rest := holding
		rest[i]--
		for _, combo := range returnCombinations(rest, n-1, i) {
			combo[i]++
			result = append(result, combo)
		}
	}
	return result
}
