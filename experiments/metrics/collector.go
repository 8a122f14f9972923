package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	Nodes        int
	Exhausted    bool // no root child, action picked by fallback
}

type MoveMetric struct {
	Step   int
	Player int // Agent ID
	Action string
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Agent ID
	Winner         int // Agent ID, -1 on a tie
	Scores         [2]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(cutoff int)
	AddFullPlayout()
	AddEpisode()
	SetNodes(nodes int)
	Complete() SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) SetNodes(nodes int) {
	m.nodes.Store(int32(nodes))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Nodes:        int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)       {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) SetNodes(nodes int)     {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
