package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Workers      int
	Budget       time.Duration
	Duration     time.Duration
	Nodes        int
	MaxDepth     int // Deepest iteration any root worker completed
	Publications int // Completed (move, depth) results
	Fallback     bool
}

type MoveMetric struct {
	Step   int
	Player string // Color name
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" on a tie
	BlackDiscs     int
	WhiteDiscs     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(workers int, budget time.Duration)
	AddNodes(n int)
	AddDepth(depth int)
	SetFallback(value bool)
	Complete() SearchMetric
}

type collector struct {
	workers      int
	budget       time.Duration
	startTime    time.Time
	nodes        atomic.Int64
	maxDepth     atomic.Int32
	publications atomic.Int32
	fallback     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int, budget time.Duration) {
	m.startTime = time.Now()
	m.workers = workers
	m.budget = budget
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) AddDepth(depth int) {
	m.publications.Add(1)
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) SetFallback(value bool) {
	m.fallback.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:      m.workers,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
		Publications: int(m.publications.Load()),
		Fallback:     m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers int, budget time.Duration) {}
func (m *dummyCollector) AddNodes(n int)                          {}
func (m *dummyCollector) AddDepth(depth int)                      {}
func (m *dummyCollector) SetFallback(value bool)                  {}
func (m *dummyCollector) Complete() SearchMetric                  { return SearchMetric{} }
