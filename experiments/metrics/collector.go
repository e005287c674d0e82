package metrics

import (
	"time"
)

type SearchMetric struct {
	Strategy    string
	Depth       int
	StartTime   time.Time
	Duration    time.Duration
	Expanded    int     // Paths removed from the frontier, or game nodes visited
	Evaluated   int     // Static evaluations (game search only)
	Cutoffs     int     // Alpha-beta cutoffs (game search only)
	MaxFrontier int     // Largest frontier observed (path search only)
	Solutions   int     // Goal paths returned so far (path search only)
	Value       float64 // Cost of the last solution, or value of the chosen move
}

type MoveMetric struct {
	Step   int
	Player string // "X" or "O"
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "X", "O" or "" for a draw
	FinalValue     float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

type Collector interface {
	Start(strategy string, depth int)
	AddExpansion()
	AddEvaluation()
	AddCutoff()
	ObserveFrontier(size int)
	AddSolution(value float64)
	SetValue(value float64)
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	depth       int
	startTime   time.Time
	expanded    int
	evaluated   int
	cutoffs     int
	maxFrontier int
	solutions   int
	value       float64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets all counters.
func (m *collector) Start(strategy string, depth int) {
	*m = collector{
		strategy:  strategy,
		depth:     depth,
		startTime: time.Now(),
	}
}

func (m *collector) AddExpansion() {
	m.expanded++
}

func (m *collector) AddEvaluation() {
	m.evaluated++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) ObserveFrontier(size int) {
	if size > m.maxFrontier {
		m.maxFrontier = size
	}
}

func (m *collector) AddSolution(value float64) {
	m.solutions++
	m.value = value
}

func (m *collector) SetValue(value float64) {
	m.value = value
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Depth:       m.depth,
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Expanded:    m.expanded,
		Evaluated:   m.evaluated,
		Cutoffs:     m.cutoffs,
		MaxFrontier: m.maxFrontier,
		Solutions:   m.solutions,
		Value:       m.value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int) {}
func (m *dummyCollector) AddExpansion()                    {}
func (m *dummyCollector) AddEvaluation()                   {}
func (m *dummyCollector) AddCutoff()                       {}
func (m *dummyCollector) ObserveFrontier(size int)         {}
func (m *dummyCollector) AddSolution(value float64)        {}
func (m *dummyCollector) SetValue(value float64)           {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
