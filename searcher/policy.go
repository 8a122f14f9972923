package searcher

import "math"

// ucb1 = value/visits + c*sqrt(2*ln(N)/visits). Unvisited children score +Inf
// so they are tried before any visited sibling.
func ucb1(value float64, visits int, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	n := float64(visits)
	return value/n + c*math.Sqrt(2*math.Log(float64(parentVisits))/n)
}
