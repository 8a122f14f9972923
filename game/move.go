package game

import "fmt"

// Action is a single agent turn. Card is set for reserve and buy actions,
// Collected for collections (and the wildcard taken when reserving), Returned
// for gems handed back to the bank (payment when buying, excess otherwise).
// Noble is set when the action ends with the agent claiming that noble.
type Action struct {
	Type      ActionType `json:"type"`
	Card      *Card      `json:"card,omitempty"`
	Collected Gems       `json:"collected_gems"`
	Returned  Gems       `json:"returned_gems"`
	Noble     *Noble     `json:"noble,omitempty"`
}

// ClaimsNoble reports whether the action triggers a noble visit.
func (a Action) ClaimsNoble() bool {
	return a.Noble != nil
}

// Equal compares actions by content rather than pointer identity, so actions
// decoded from JSON match the engine's own.
func (a Action) Equal(other Action) bool {
	if a.Type != other.Type || a.Collected != other.Collected || a.Returned != other.Returned {
		return false
	}
	if (a.Card == nil) != (other.Card == nil) || (a.Card != nil && a.Card.ID != other.Card.ID) {
		return false
	}
	if (a.Noble == nil) != (other.Noble == nil) || (a.Noble != nil && a.Noble.ID != other.Noble.ID) {
		return false
	}
	return true
}

func (a Action) String() string {
	s := a.Type.String()
	if a.Card != nil {
		s += fmt.Sprintf(" card=%d", a.Card.ID)
	}
	if a.Collected.Total() > 0 {
		s += fmt.Sprintf(" collected=%v", a.Collected)
	}
	if a.Returned.Total() > 0 {
		s += fmt.Sprintf(" returned=%v", a.Returned)
	}
	if a.Noble != nil {
		s += fmt.Sprintf(" noble=%d", a.Noble.ID)
	}
	return s
}
