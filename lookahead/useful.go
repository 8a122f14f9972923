package lookahead

import "splendor/game"

// UsefulCards filters the face-up cards down to those worth chasing: every
// 5-point card, 3- and 4-point cards costing a single color, 2-point cards
// costing one or two colors, and 1-point cards costing a single color or
// exactly 7 gems in total.
func UsefulCards(state *game.State) []*game.Card {
	useful := []*game.Card{}
	for _, card := range state.Board.DealtList() {
		if IsUseful(card) {
			useful = append(useful, card)
		}
	}
	return useful
}

func IsUseful(card *game.Card) bool {
	breadth := card.Cost.Breadth()
	switch card.Points {
	case 5:
		return true
	case 4, 3:
		return breadth == 1
	case 2:
		return breadth == 1 || breadth == 2
	case 1:
		return breadth == 1 || card.Cost.Total() == 7
	}
	return false
}

// Contains reports whether card is among cards, matched by id.
func Contains(cards []*game.Card, card *game.Card) bool {
	for _, c := range cards {
		if c.ID == card.ID {
			return true
		}
	}
	return false
}
