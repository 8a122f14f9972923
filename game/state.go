package game

const (
	NumPlayers   = 2
	Tiers        = 3
	DealtPerTier = 4
	MaxGems      = 10
	MaxReserved  = 3
	WinningScore = 15
)

// AgentState is everything one agent owns. Cards[Yellow] holds the agent's
// reserved cards; the other slots hold bought cards by produced color.
type AgentState struct {
	ID     int                `json:"id"`
	Score  int                `json:"score"`
	Gems   Gems               `json:"gems"`
	Cards  [NumColors][]*Card `json:"cards"`
	Nobles []*Noble           `json:"nobles,omitempty"`
}

// CardCounts is the number of owned cards per color (reserved count under
// Yellow).
func (a *AgentState) CardCounts() Gems {
	var counts Gems
	for _, c := range Colors {
		counts[c] = len(a.Cards[c])
	}
	return counts
}

func (a *AgentState) Reserved() []*Card {
	return a.Cards[Yellow]
}

// Bought is the number of bought (not reserved) cards.
func (a *AgentState) Bought() int {
	n := 0
	for _, c := range GemColors {
		n += len(a.Cards[c])
	}
	return n
}

func (a *AgentState) copy() AgentState {
	cp := AgentState{
		ID:     a.ID,
		Score:  a.Score,
		Gems:   a.Gems,
		Nobles: append([]*Noble(nil), a.Nobles...),
	}
	for i := range a.Cards {
		cp.Cards[i] = append([]*Card(nil), a.Cards[i]...)
	}
	return cp
}

// Board is the shared part of the game: the gem bank, the face-down decks,
// the face-up (dealt) cards and the nobles still available.
type Board struct {
	Gems   Gems           `json:"gems"`
	Decks  [Tiers][]*Card `json:"decks"`
	Dealt  [Tiers][]*Card `json:"dealt"`
	Nobles []*Noble       `json:"nobles"`
}

// DealtList returns every face-up card, lowest tier first.
func (b *Board) DealtList() []*Card {
	cards := make([]*Card, 0, Tiers*DealtPerTier)
	for _, tier := range b.Dealt {
		for _, card := range tier {
			if card != nil {
				cards = append(cards, card)
			}
		}
	}
	return cards
}

func (b *Board) copy() Board {
	cp := Board{
		Gems:   b.Gems,
		Nobles: append([]*Noble(nil), b.Nobles...),
	}
	for i := range b.Decks {
		cp.Decks[i] = append([]*Card(nil), b.Decks[i]...)
		cp.Dealt[i] = append([]*Card(nil), b.Dealt[i]...)
	}
	return cp
}

// State is a snapshot of the whole game. Operations that advance the game
// work on a Copy; a State is never shared mutably between search branches.
type State struct {
	Board  Board                  `json:"board"`
	Agents [NumPlayers]AgentState `json:"agents"`
	Turns  int                    `json:"turns"`
}

// Copy returns a deep copy of the State. Cards and nobles are immutable and
// are shared.
func (s *State) Copy() *State {
	cp := &State{
		Board: s.Board.copy(),
		Turns: s.Turns,
	}
	for i := range s.Agents {
		cp.Agents[i] = s.Agents[i].copy()
	}
	return cp
}

// Other returns the opponent of agent in a two-player game.
func Other(agent int) int {
	return 1 - agent
}

// Winner returns the agent with the highest score, ties broken by fewer
// bought cards. ok is false on a full tie.
func (s *State) Winner() (winner int, ok bool) {
	a, b := &s.Agents[0], &s.Agents[1]
	switch {
	case a.Score > b.Score:
		return 0, true
	case b.Score > a.Score:
		return 1, true
	case a.Bought() < b.Bought():
		return 0, true
	case b.Bought() < a.Bought():
		return 1, true
	}
	return -1, false
}
