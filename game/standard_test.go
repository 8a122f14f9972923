package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countTypes(actions []Action) map[ActionType]int {
	counts := map[ActionType]int{}
	for _, a := range actions {
		counts[a.Type]++
	}
	return counts
}

func TestLegalActions(t *testing.T) {
	rules := NewStandardRules()

	t.Run("opening position", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 1)

		actions := rules.LegalActions(s, 0)

		require.Equal(t, map[ActionType]int{
			CollectDiff: 10, // 5 choose 3
			CollectSame: 5,
			Reserve:     12,
		}, countTypes(actions))
		for _, a := range actions {
			if a.Type == Reserve {
				require.Equal(t, Gems{Yellow: 1}, a.Collected, "Reserving should take a wildcard")
			}
		}
	})

	t.Run("collecting past the gem limit requires returns", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 1)
		s.Agents[0].Gems = Gems{Red: 3, Green: 3, Blue: 3}

		returns := 0
		for _, a := range rules.LegalActions(s, 0) {
			holding := s.Agents[0].Gems.Add(a.Collected).Sub(a.Returned)
			require.LessOrEqual(t, holding.Total(), MaxGems, "Action %v should not exceed the gem limit", a)
			if a.Type == CollectSame && a.Collected[Black] == 2 {
				returns++
				require.Equal(t, 1, a.Returned.Total())
			}
		}
		require.Equal(t, 4, returns, "Should return one of red, green, blue or black")
	})

	t.Run("no reserving with three reserved cards", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 1)
		s.Agents[0].Cards[Yellow] = []*Card{{ID: 101}, {ID: 102}, {ID: 103}}

		require.Zero(t, countTypes(rules.LegalActions(s, 0))[Reserve])
	})

	t.Run("buying claims a qualifying noble", func(t *testing.T) {
		card := &Card{ID: 200, Tier: 1, Color: Green, Points: 1, Cost: Cost{{Color: Red, Count: 1}}}
		noble := &Noble{ID: 1, Points: NoblePoints, Requirement: Cost{{Color: Red, Count: 4}, {Color: Green, Count: 4}}}
		s := &State{}
		s.Board.Dealt[0] = []*Card{card}
		s.Board.Nobles = []*Noble{noble}
		for i := 0; i < 4; i++ {
			s.Agents[0].Cards[Red] = append(s.Agents[0].Cards[Red], &Card{ID: 300 + i, Color: Red})
		}
		for i := 0; i < 3; i++ {
			s.Agents[0].Cards[Green] = append(s.Agents[0].Cards[Green], &Card{ID: 310 + i, Color: Green})
		}

		var buy *Action
		for _, a := range rules.LegalActions(s, 0) {
			if a.Type == BuyAvailable {
				buy = &a
			}
		}

		require.NotNil(t, buy, "Free card should be buyable")
		require.Equal(t, Gems{}, buy.Returned, "Owned red cards should pay for the card")
		require.True(t, buy.ClaimsNoble(), "Fourth green card should attract the noble")

		next := rules.Successor(s, *buy, 0)
		require.Equal(t, 1+NoblePoints, next.Agents[0].Score)
		require.Empty(t, next.Board.Nobles)
		require.Len(t, next.Agents[0].Cards[Green], 4)
	})
}

func TestPayment(t *testing.T) {
	card := &Card{ID: 1, Cost: Cost{{Color: Red, Count: 3}, {Color: Blue, Count: 1}}}

	t.Run("cards discount before gems, wildcards cover the rest", func(t *testing.T) {
		me := &AgentState{Gems: Gems{Red: 1, Blue: 1, Yellow: 1}}
		me.Cards[Red] = []*Card{{ID: 2, Color: Red}}

		payment, ok := Payment(me, card)

		require.True(t, ok)
		require.Equal(t, Gems{Red: 1, Blue: 1, Yellow: 1}, payment)
	})

	t.Run("not enough wildcards", func(t *testing.T) {
		me := &AgentState{Gems: Gems{Red: 1, Blue: 1}}

		_, ok := Payment(me, card)

		require.False(t, ok)
	})
}

func TestSuccessor(t *testing.T) {
	rules := NewStandardRules()

	t.Run("does not modify the input state", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 3)
		before := s.Copy()

		for _, a := range rules.LegalActions(s, 0) {
			rules.Successor(s, a, 0)
		}

		require.Equal(t, before, s)
	})

	t.Run("collecting moves gems from the bank", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 3)
		action := Action{Type: CollectDiff, Collected: Gems{Red: 1, Green: 1, Blue: 1}}

		next := rules.Successor(s, action, 1)

		require.Equal(t, Gems{Red: 1, Green: 1, Blue: 1}, next.Agents[1].Gems)
		require.Equal(t, Gems{3, 3, 3, 4, 4, 5}, next.Board.Gems)
		require.Equal(t, 1, next.Turns)
	})

	t.Run("reserving refills the slot", func(t *testing.T) {
		s := NewGame(DefaultDeck(), 3)
		card := s.Board.Dealt[2][1]
		action := Action{Type: Reserve, Card: card, Collected: Gems{Yellow: 1}}

		next := rules.Successor(s, action, 0)

		require.Equal(t, []*Card{card}, next.Agents[0].Reserved())
		require.Equal(t, s.Board.Decks[2][0], next.Board.Dealt[2][1], "Top of the deck should fill the slot")
		require.Len(t, next.Board.Decks[2], len(s.Board.Decks[2])-1)
		require.Equal(t, 1, next.Agents[0].Gems[Yellow])
	})

	t.Run("buying a reserved card", func(t *testing.T) {
		card := &Card{ID: 7, Color: Black, Points: 2, Cost: Cost{{Color: White, Count: 2}}}
		s := &State{}
		s.Agents[0].Gems = Gems{White: 1, Yellow: 1}
		s.Agents[0].Cards[Yellow] = []*Card{card}
		action := Action{Type: BuyReserve, Card: card, Returned: Gems{White: 1, Yellow: 1}}

		next := rules.Successor(s, action, 0)

		require.Empty(t, next.Agents[0].Reserved())
		require.Equal(t, []*Card{card}, next.Agents[0].Cards[Black])
		require.Equal(t, 2, next.Agents[0].Score)
		require.Equal(t, Gems{White: 1, Yellow: 1}, next.Board.Gems)
		require.Equal(t, Gems{}, next.Agents[0].Gems)
	})
}

func TestGameEnds(t *testing.T) {
	rules := NewStandardRules()
	s := &State{}
	require.False(t, rules.GameEnds(s))

	s.Agents[1].Score = WinningScore
	require.True(t, rules.GameEnds(s))
}
