package heuristic

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"

	"splendor/game"
)

var ErrNoActions = errors.New("no actions to select from")

// Selector picks the best scoring action within a wall-clock deadline.
type Selector struct {
	rng *rand.Rand
	now func() time.Time
}

func NewSelector(rng *rand.Rand, now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	return &Selector{rng: rng, now: now}
}

// Select scores actions for agent until the deadline passes and returns the
// lowest scoring one. The features measure distances (to the winning score,
// to the nobles), so lower is better.
func (s *Selector) Select(actions []game.Action, state *game.State, agent int, deadline time.Time) (game.Action, error) {
	i, err := s.SelectIndex(actions, state, agent, deadline)
	if err != nil {
		return game.Action{}, err
	}
	return actions[i], nil
}

// SelectIndex returns the position of the lowest scoring action; ties keep
// the earliest. When the deadline passes before any action is scored, a
// uniformly random position is returned.
func (s *Selector) SelectIndex(actions []game.Action, state *game.State, agent int, deadline time.Time) (int, error) {
	if len(actions) == 0 {
		return -1, ErrNoActions
	}

	snapshot := BuildSnapshot(state, agent)
	best := -1
	bestScore := 0.0
	for i, action := range actions {
		if s.now().After(deadline) {
			break
		}
		score := Score(snapshot, EstimateAction(action))
		if best < 0 || score < bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return s.rng.Intn(len(actions)), nil
	}
	return best, nil
}
