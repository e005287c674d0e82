package searcher

import "explore/experiments/metrics"

// DefaultProgressEvery is how many expansions pass between progress log lines.
const DefaultProgressEvery = 1000

type Option func(o *options)

type options struct {
	cycleAvoidance bool
	progressEvery  int
	metrics        metrics.Collector
}

// WithCycleAvoidance keeps a cost table and only enqueues a state again when it
// is reached at a strictly lower cost.
func WithCycleAvoidance() Option {
	return func(o *options) {
		o.cycleAvoidance = true
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithProgressEvery sets the debug log cadence. Zero disables progress logging.
func WithProgressEvery(expansions int) Option {
	return func(o *options) {
		if expansions >= 0 {
			o.progressEvery = expansions
		}
	}
}
