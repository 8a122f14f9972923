package game

// Rules is the game engine consumed by the agent. Implementations must never
// mutate the state they are given.
type Rules interface {
	LegalActions(state *State, agent int) []Action
	Successor(state *State, action Action, agent int) *State
	GameEnds(state *State) bool
}
