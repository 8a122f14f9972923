package searcher

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/heuristic"
	"splendor/reward"
)

type Option func(mcts *MCTS)

type MCTS struct {
	rules       game.Rules
	duration    time.Duration
	cutoff      int
	exploration float64
	discount    float64
	winReward   float64
	seed        uint64
	now         func() time.Time
	selector    *heuristic.Selector
	reward      *reward.Model
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithDiscount(discount float64) Option {
	return func(m *MCTS) {
		if discount > 0 && discount <= 1 {
			m.discount = discount
		}
	}
}

// WithWinReward sets the value a rollout reaching an ended game adds for the
// winner's side. Zero scores ended games by action rewards alone.
func WithWinReward(reward float64) Option {
	return func(m *MCTS) {
		if reward >= 0 {
			m.winReward = reward
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithClock replaces time.Now for every budget check.
func WithClock(now func() time.Time) Option {
	return func(m *MCTS) {
		if now != nil {
			m.now = now
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(rules game.Rules, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		rules:       rules,
		duration:    TimeLimit,
		cutoff:      MaxDepth,
		exploration: Exploration,
		discount:    Discount,
		winReward:   WinReward,
		seed:        uint64(time.Now().UnixNano()),
		now:         time.Now,
		reward:      reward.NewModel(rules),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	m.selector = heuristic.NewSelector(rand.New(rand.NewSource(m.seed)), m.now)
	return m
}

func (m *MCTS) Seed() uint64 {
	return m.seed
}

// Search runs select, expand, simulate and backup iterations from state until
// the time budget elapses and returns the root action with the most visits.
// agent is the agent to move in state.
func (m *MCTS) Search(state *game.State, agent int, legalActions []game.Action) (game.Action, metrics.SearchMetric, error) {
	if len(legalActions) == 0 {
		return game.Action{}, metrics.SearchMetric{}, ErrInvalidInput
	}

	m.metrics.Start(m.cutoff)
	if len(legalActions) == 1 {
		return legalActions[0], m.metrics.Complete(), nil
	}

	deadline := m.now().Add(m.duration)
	root := newRoot(state.Copy(), agent, legalActions)
	for m.now().Before(deadline) {
		m.iterate(root, deadline)
		m.metrics.AddEpisode()
	}
	m.metrics.SetNodes(root.size())
	metric := m.metrics.Complete()

	best := root.mostVisited()
	if best == nil {
		metric.Exhausted = true
		return game.Action{}, metric, ErrSearchExhausted
	}

	log.Debug().Msgf("agent %d searched %d episodes over %d root children, chose %v (%d visits)",
		agent, root.visits, len(root.children), *best.action, best.visits)
	return *best.action, metric, nil
}

func (m *MCTS) iterate(root *node, deadline time.Time) {
	leaf := root.selectLeaf(m.exploration)
	if leaf.isExpandable() {
		leaf = m.expand(leaf, deadline)
	}
	value := m.simulate(leaf, deadline)
	backup(leaf, value)
}

// expand adds the child reached by the heuristically best (lowest scoring)
// untried action. The selector falls back to a random action at the deadline,
// so a child is always added.
func (m *MCTS) expand(n *node, deadline time.Time) *node {
	i, err := m.selector.SelectIndex(n.untried, n.state, n.agent, deadline)
	if err != nil {
		panic("cannot expand node without untried actions")
	}
	return n.addChild(i, m.rules)
}

// simulate plays heuristic actions forward from n's state, summing discounted
// rewards from the perspective of the agent that moved into n: its own turns
// add, its opponent's subtract. An ended game adds the discounted win reward
// for its winner, since no action reward follows it.
func (m *MCTS) simulate(n *node, deadline time.Time) float64 {
	perspective := game.Other(n.agent)
	acting := n.agent
	state := n.state
	value := 0.0

	for depth := 1; depth < m.cutoff; depth++ {
		if m.rules.GameEnds(state) {
			value += m.outcome(state, perspective) * math.Pow(m.discount, float64(depth))
			m.metrics.AddFullPlayout()
			break
		}
		if !m.now().Before(deadline) {
			break
		}

		actions := m.rules.LegalActions(state, acting)
		action, err := m.selector.Select(actions, state, acting, deadline)
		if err != nil { // No legal action for the acting agent
			break
		}

		r := m.reward.Reward(action, state, acting) * math.Pow(m.discount, float64(depth))
		if acting == perspective {
			value += r
		} else {
			value -= r
		}

		state = m.rules.Successor(state, action, acting)
		acting = game.Other(acting)
	}
	return value
}

func (m *MCTS) outcome(state *game.State, perspective int) float64 {
	winner, ok := state.Winner()
	switch {
	case !ok:
		return 0
	case winner == perspective:
		return m.winReward
	default:
		return -m.winReward
	}
}
