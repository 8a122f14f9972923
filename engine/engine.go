package engine

import "splendor/experiments/metrics"

const MaxMoves = 400

type Engine interface {
	// Run plays a game till it ends or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
