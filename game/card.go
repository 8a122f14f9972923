package game

// Requirement is a count of a single color.
type Requirement struct {
	Color Color `json:"color" yaml:"color"`
	Count int   `json:"count" yaml:"count"`
}

// Cost is an ordered list of color requirements. The order is significant:
// wildcard gems are consumed while walking it.
type Cost []Requirement

// Get returns the required count for a color, 0 if absent.
func (c Cost) Get(color Color) int {
	for _, r := range c {
		if r.Color == color {
			return r.Count
		}
	}
	return 0
}

// Breadth is the number of distinct colors with a positive requirement.
func (c Cost) Breadth() int {
	n := 0
	for _, r := range c {
		if r.Count > 0 {
			n++
		}
	}
	return n
}

func (c Cost) Total() int {
	total := 0
	for _, r := range c {
		total += r.Count
	}
	return total
}

// Card is a development card. It produces one permanent gem of Color once
// bought. Cards are immutable and shared between state copies.
type Card struct {
	ID     int   `json:"id" yaml:"id"`
	Tier   int   `json:"tier" yaml:"tier"`
	Color  Color `json:"color" yaml:"color"`
	Points int   `json:"points" yaml:"points"`
	Cost   Cost  `json:"cost" yaml:"cost"`
}

// Noble is awarded to an agent holding at least the required number of cards
// of each listed color.
type Noble struct {
	ID          int  `json:"id" yaml:"id"`
	Points      int  `json:"points" yaml:"points"`
	Requirement Cost `json:"requirement" yaml:"requirement"`
}

const NoblePoints = 3
