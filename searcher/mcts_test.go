package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"splendor/game"
	"splendor/reward"
)

func TestSearch(t *testing.T) {
	t.Run("empty legal actions", func(t *testing.T) {
		m := NewMCTS(mockRules{}, WithSeed(1))

		_, _, err := m.Search(emptyState(), 0, nil)

		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("single legal action is returned immediately", func(t *testing.T) {
		m := NewMCTS(mockRules{}, WithSeed(1), WithMetrics())
		only := collect(game.Red)

		start := time.Now()
		action, metric, err := m.Search(emptyState(), 0, []game.Action{only})

		require.NoError(t, err)
		require.True(t, action.Equal(only), "Should return the only action")
		require.Zero(t, metric.Episodes, "Should not search")
		require.Less(t, time.Since(start), 100*time.Millisecond, "Should not use the time budget")
	})

	t.Run("chooses the game winning action", func(t *testing.T) {
		rules := mockRules{canWin: [game.NumPlayers]bool{true, true}}
		m := NewMCTS(rules, WithSeed(1), WithDuration(100*time.Millisecond), WithMetrics())
		state := emptyState()

		action, metric, err := m.Search(state, 0, rules.LegalActions(state, 0))

		require.NoError(t, err)
		require.True(t, action.Equal(buyWinning()), "Should buy the winning card, got %v", action)
		require.Positive(t, metric.Episodes, "Should run episodes")
		require.Greater(t, metric.Nodes, 4, "Should expand every root action")
		require.Equal(t, 0, state.Agents[0].Score, "Input state should not change")
	})

	t.Run("returns a legal action within the time budget", func(t *testing.T) {
		rules := game.NewStandardRules()
		state := game.NewGame(game.DefaultDeck(), 7)
		actions := rules.LegalActions(state, 0)
		m := NewMCTS(rules, WithSeed(7), WithDuration(200*time.Millisecond))

		start := time.Now()
		action, _, err := m.Search(state, 0, actions)
		elapsed := time.Since(start)

		require.NoError(t, err)
		require.Contains(t, actions, action, "Should return one of the legal actions")
		require.Less(t, elapsed, 400*time.Millisecond, "Should respect the time budget")
	})

	t.Run("finds the winning buy among hundreds of actions", func(t *testing.T) {
		rules := game.NewStandardRules()
		state, winning := crowdedState()
		actions := rules.LegalActions(state, 0)
		require.Greater(t, len(actions), 200, "Holding 10 gems should multiply the collect actions")

		m := NewMCTS(rules, WithSeed(11), WithDuration(200*time.Millisecond))
		action, _, err := m.Search(state, 0, actions)

		require.NoError(t, err)
		require.Equal(t, game.BuyAvailable, action.Type, "Should buy, got %v", action)
		require.Equal(t, winning.ID, action.Card.ID, "Should buy the card reaching the winning score")
	})

	t.Run("exhausted budget before the first iteration", func(t *testing.T) {
		t0 := time.Now()
		calls := 0
		clock := func() time.Time {
			calls++
			if calls == 1 {
				return t0
			}
			return t0.Add(time.Hour)
		}
		rules := mockRules{}
		state := emptyState()
		m := NewMCTS(rules, WithSeed(1), WithClock(clock), WithMetrics())

		_, metric, err := m.Search(state, 0, rules.LegalActions(state, 0))

		require.ErrorIs(t, err, ErrSearchExhausted)
		require.True(t, metric.Exhausted, "Metric should flag the exhausted search")
	})
}

func TestSimulate(t *testing.T) {
	t.Run("terminal leaf scores the win for the agent that moved into it", func(t *testing.T) {
		rules := mockRules{}
		m := NewMCTS(rules, WithSeed(1), WithMetrics())
		state := emptyState()
		state.Agents[0].Score = game.WinningScore
		leaf := &node{agent: 1, state: state}

		value := m.simulate(leaf, time.Now().Add(time.Second))

		require.InDelta(t, WinReward*Discount, value, 1e-9, "Win should be discounted by one ply")
		require.Equal(t, 1, m.metrics.Complete().FullPlayouts, "Ended game should count as a full playout")
	})

	t.Run("terminal leaf loses for the agent that moved into it", func(t *testing.T) {
		m := NewMCTS(mockRules{}, WithSeed(1))
		state := emptyState()
		state.Agents[1].Score = game.WinningScore
		leaf := &node{agent: 1, state: state}

		require.InDelta(t, -WinReward*Discount, m.simulate(leaf, time.Now().Add(time.Second)), 1e-9)
	})

	t.Run("zero win reward leaves only action rewards", func(t *testing.T) {
		m := NewMCTS(mockRules{}, WithSeed(1), WithWinReward(0))
		state := emptyState()
		state.Agents[0].Score = game.WinningScore
		leaf := &node{agent: 1, state: state}

		require.Zero(t, m.simulate(leaf, time.Now().Add(time.Second)))
	})

	t.Run("opponent rewards are subtracted with the ply discount", func(t *testing.T) {
		rules := mockRules{canWin: [game.NumPlayers]bool{false, true}, mustWin: true}
		m := NewMCTS(rules, WithSeed(1), WithWinReward(0))
		leaf := &node{agent: 1, state: emptyState()}

		value := m.simulate(leaf, time.Now().Add(time.Second))

		// Agent 1 buys a card agent 0 could also afford, then the game ends
		require.InDelta(t, -reward.ContestedBuy*Discount, value, 1e-9)
	})

	t.Run("opponent winning adds the discounted loss", func(t *testing.T) {
		rules := mockRules{canWin: [game.NumPlayers]bool{false, true}, mustWin: true}
		m := NewMCTS(rules, WithSeed(1))
		leaf := &node{agent: 1, state: emptyState()}

		value := m.simulate(leaf, time.Now().Add(time.Second))

		expected := -reward.ContestedBuy*Discount - WinReward*Discount*Discount
		require.InDelta(t, expected, value, 1e-9)
	})

	t.Run("stops at the depth cutoff", func(t *testing.T) {
		rules := mockRules{}
		m := NewMCTS(rules, WithSeed(1), WithCutoff(3), WithMetrics())
		leaf := &node{agent: 0, state: emptyState()}

		value := m.simulate(leaf, time.Now().Add(time.Second))

		require.Zero(t, value, "Collecting without consequence should be worth nothing")
		require.Zero(t, m.metrics.Complete().FullPlayouts, "Cutoff should not count as a full playout")
	})
}

// crowdedState has agent 0 at 12 points holding 10 gems, with exactly one
// affordable card: a 3-point card that wins the game.
func crowdedState() (*game.State, *game.Card) {
	winning := &game.Card{ID: 1, Tier: 3, Color: game.Red, Points: 3, Cost: game.Cost{{Color: game.Red, Count: 3}}}
	state := emptyState()
	state.Board.Gems = game.Gems{4, 4, 4, 4, 4, 5}
	state.Board.Dealt[0] = []*game.Card{
		{ID: 2, Tier: 1, Color: game.Blue, Cost: game.Cost{{Color: game.White, Count: 5}}},
		{ID: 3, Tier: 1, Color: game.Green, Points: 1, Cost: game.Cost{{Color: game.Black, Count: 4}}},
	}
	state.Board.Dealt[1] = []*game.Card{
		{ID: 4, Tier: 2, Color: game.White, Points: 2, Cost: game.Cost{{Color: game.Green, Count: 5}}},
	}
	state.Board.Dealt[2] = []*game.Card{winning}
	state.Agents[0].Score = 12
	state.Agents[0].Gems = game.Gems{game.Red: 3, game.Green: 2, game.Blue: 2, game.Black: 2, game.White: 1}
	return state, winning
}

func TestIterate(t *testing.T) {
	t.Run("one cycle updates the whole root-to-leaf path", func(t *testing.T) {
		rules := mockRules{canWin: [game.NumPlayers]bool{false, true}}
		m := NewMCTS(rules, WithSeed(1))
		deadline := time.Now().Add(time.Minute)
		state := emptyState()
		root := newRoot(state, 0, rules.LegalActions(state, 0))

		for i := 0; i < 3; i++ {
			m.iterate(root, deadline)
		}
		require.False(t, root.isExpandable(), "Root should be fully expanded")
		require.Len(t, root.children, 3)

		// Replies that end the game would make a terminal, zero-valued leaf
		for _, child := range root.children {
			untried := []game.Action{}
			for _, a := range child.untried {
				if !a.Type.IsBuy() {
					untried = append(untried, a)
				}
			}
			child.untried = untried
		}

		type stats struct {
			visits int
			value  float64
		}
		before := map[*node]stats{root: {root.visits, root.value}}
		for _, child := range root.children {
			before[child] = stats{child.visits, child.value}
		}

		m.iterate(root, deadline)

		var leaf *node
		for _, child := range root.children {
			if len(child.children) == 1 {
				leaf = child.children[0]
			}
		}
		require.NotNil(t, leaf, "One child should have been expanded")

		path := []*node{leaf, leaf.parent, root}
		require.Same(t, root, leaf.parent.parent)
		require.Equal(t, 1, leaf.visits, "New leaf should have one visit")
		require.NotZero(t, leaf.value, "Rollout should reach the opponent's contested buy")

		delta := leaf.value
		for _, n := range path[1:] {
			delta = -delta
			require.Equal(t, before[n].visits+1, n.visits, "Visits should increase by exactly 1 on the path")
			require.InDelta(t, delta, n.value-before[n].value, 1e-9, "Value signs should alternate along the path")
		}
		for _, child := range root.children {
			if child != leaf.parent {
				require.Equal(t, before[child].visits, child.visits, "Nodes off the path should not change")
			}
		}
	})
}
