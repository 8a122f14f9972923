package heuristic

// Weights blends the five features.
type Weights struct {
	Urgency, Economy, CardDiversity, GemDiversity, Nobles float64
}

var (
	EarlyWeights = Weights{Urgency: 20, Economy: 2, CardDiversity: 10, GemDiversity: 10, Nobles: 30}
	MidWeights   = Weights{Urgency: 20, Economy: 2, CardDiversity: 10, GemDiversity: 15, Nobles: 25}
	LateWeights  = Weights{Urgency: 30, Economy: 2, CardDiversity: 10, GemDiversity: 10, Nobles: 35}
)

// PhaseWeights picks the weight regime for the score held before acting.
func PhaseWeights(score int) Weights {
	switch {
	case score > 12:
		return LateWeights
	case score > 6:
		return MidWeights
	default:
		return EarlyWeights
	}
}

// Score rates an action, described by its estimate, for the position in s.
func Score(s Snapshot, e Estimate) float64 {
	w := PhaseWeights(s.Score)
	return w.Urgency*endgameUrgency(s, e) +
		w.Economy*gemEconomy(e) +
		w.CardDiversity*cardDiversity(s) +
		w.GemDiversity*gemDiversity(s, e) +
		w.Nobles*nobleAttraction(s, e)
}
