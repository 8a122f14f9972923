package game

import (
	"encoding/json"
	"fmt"
)

// Color is a gem color. Yellow is the wildcard (gold) that substitutes for any
// other color when paying a cost.
type Color int

const (
	Red Color = iota
	Green
	Blue
	Black
	White
	Yellow
)

const NumColors = 6

// Colors lists every gem color in a fixed order, wildcard last.
var Colors = [NumColors]Color{Red, Green, Blue, Black, White, Yellow}

// GemColors lists the five real (non-wildcard) colors.
var GemColors = [NumColors - 1]Color{Red, Green, Blue, Black, White}

var colorNames = [NumColors]string{"red", "green", "blue", "black", "white", "yellow"}

func (c Color) String() string {
	if c < 0 || int(c) >= NumColors {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

func ParseColor(s string) (Color, error) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Gems counts gems per color, indexed by Color. It is a value type so copies
// never alias.
type Gems [NumColors]int

func (g Gems) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

func (g Gems) Add(other Gems) Gems {
	for i := range g {
		g[i] += other[i]
	}
	return g
}

func (g Gems) Sub(other Gems) Gems {
	for i := range g {
		g[i] -= other[i]
	}
	return g
}

// MarshalJSON encodes non-zero counts as an object keyed by color name.
func (g Gems) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, NumColors)
	for _, c := range Colors {
		if g[c] != 0 {
			m[c.String()] = g[c]
		}
	}
	return json.Marshal(m)
}

func (g *Gems) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*g = Gems{}
	for name, n := range m {
		c, err := ParseColor(name)
		if err != nil {
			return err
		}
		g[c] = n
	}
	return nil
}
