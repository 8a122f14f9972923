package game

import (
	_ "embed"
	"fmt"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeck []byte

// Deck is the static card and noble data a game is set up from.
type Deck struct {
	Cards  []*Card  `yaml:"cards"`
	Nobles []*Noble `yaml:"nobles"`
}

// LoadDeck parses a YAML deck definition.
func LoadDeck(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	for _, card := range d.Cards {
		if card.Tier < 1 || card.Tier > Tiers {
			return nil, fmt.Errorf("card %d has invalid tier %d", card.ID, card.Tier)
		}
	}
	if len(d.Nobles) < NumPlayers+1 {
		return nil, fmt.Errorf("deck needs at least %d nobles, got %d", NumPlayers+1, len(d.Nobles))
	}
	return &d, nil
}

// DefaultDeck returns the embedded 90-card deck.
func DefaultDeck() *Deck {
	d, err := LoadDeck(defaultDeck)
	if err != nil {
		panic(err)
	}
	return d
}

// NewGame deals a fresh two-player game from the deck, shuffled by seed.
func NewGame(d *Deck, seed uint64) *State {
	rng := rand.New(rand.NewSource(seed))
	s := &State{}

	for _, card := range d.Cards {
		tier := card.Tier - 1
		s.Board.Decks[tier] = append(s.Board.Decks[tier], card)
	}
	for tier := range s.Board.Decks {
		deck := s.Board.Decks[tier]
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		n := min(DealtPerTier, len(deck))
		s.Board.Dealt[tier] = append([]*Card(nil), deck[:n]...)
		s.Board.Decks[tier] = deck[n:]
	}

	nobles := append([]*Noble(nil), d.Nobles...)
	rng.Shuffle(len(nobles), func(i, j int) { nobles[i], nobles[j] = nobles[j], nobles[i] })
	s.Board.Nobles = nobles[:NumPlayers+1]

	// Two-player bank: 4 of each color, 5 wildcards
	for _, c := range GemColors {
		s.Board.Gems[c] = 4
	}
	s.Board.Gems[Yellow] = 5

	for i := range s.Agents {
		s.Agents[i].ID = i
	}
	return s
}
