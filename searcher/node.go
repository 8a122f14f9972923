package searcher

import (
	"math"

	"splendor/game"
)

// node is a position in the search tree. Its state is owned by the node and
// reflects exactly the actions on the path from the root. agent is the agent
// to move at this node; value is accumulated from the perspective of the
// agent that moved into it.
type node struct {
	agent    int
	state    *game.State
	parent   *node
	action   *game.Action // nil at the root
	children []*node
	untried  []game.Action
	visits   int
	value    float64
}

func newRoot(state *game.State, agent int, legalActions []game.Action) *node {
	return &node{
		agent:   agent,
		state:   state,
		untried: append([]game.Action(nil), legalActions...),
	}
}

func newNode(parent *node, state *game.State, action game.Action, agent int, rules game.Rules) *node {
	var untried []game.Action
	if !rules.GameEnds(state) {
		untried = rules.LegalActions(state, agent)
	}
	return &node{
		agent:   agent,
		state:   state,
		parent:  parent,
		action:  &action,
		untried: untried,
	}
}

func (n *node) isExpandable() bool {
	return len(n.untried) > 0
}

// selectLeaf descends from n through fully expanded nodes by UCB1 and stops
// at the first node with untried actions, or at a node without children.
func (n *node) selectLeaf(c float64) *node {
	current := n
	for !current.isExpandable() && len(current.children) > 0 {
		current = current.pickChild(c)
	}
	return current
}

func (n *node) pickChild(c float64) *node {
	var best *node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(child.value, child.visits, n.visits, c)
		if math.IsInf(score, 1) {
			return child
		}
		if best == nil || score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// addChild moves the i-th untried action into a new child reached through
// the successor state.
func (n *node) addChild(i int, rules game.Rules) *node {
	action := n.untried[i]
	n.untried = append(n.untried[:i], n.untried[i+1:]...)

	next := rules.Successor(n.state, action, n.agent)
	child := newNode(n, next, action, game.Other(n.agent), rules)
	n.children = append(n.children, child)
	return child
}

// backup records one simulation on every node from n to the root, negating
// value at each level.
func backup(n *node, value float64) {
	for current := n; current != nil; current = current.parent {
		current.visits++
		current.value += value
		value = -value
	}
}

// mostVisited returns the child with the most visits, the earliest on ties.
func (n *node) mostVisited() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// size counts the nodes in the subtree rooted at n.
func (n *node) size() int {
	total := 1
	for _, child := range n.children {
		total += child.size()
	}
	return total
}
