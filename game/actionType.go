package game

import (
	"encoding/json"
	"fmt"
)

// ActionType represents the kind of action an agent can perform.
type ActionType int

const (
	Reserve ActionType = iota
	BuyAvailable
	BuyReserve
	CollectSame
	CollectDiff
)

var actionTypeNames = []string{"reserve", "buy_available", "buy_reserve", "collect_same", "collect_diff"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionTypeNames[t]
}

func (t ActionType) IsBuy() bool {
	return t == BuyAvailable || t == BuyReserve
}

func (t ActionType) IsCollect() bool {
	return t == CollectSame || t == CollectDiff
}

func (t ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ActionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range actionTypeNames {
		if n == name {
			*t = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", name)
}
