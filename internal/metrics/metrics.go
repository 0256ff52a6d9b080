package metrics

import (
	"Seismo/internal/calc/drift"

	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	evaluations   prometheus.Counter
	floors        prometheus.Counter
	exceeded      prometheus.Counter
	floorsPerEval prometheus.Histogram
}

// NewProm registers the evaluation metrics on reg.
func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seismo_evaluations_total",
			Help: "Drift evaluations performed.",
		}),
		floors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seismo_floors_evaluated_total",
			Help: "Floors evaluated across all evaluations.",
		}),
		exceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seismo_limit_exceeded_total",
			Help: "Evaluations in which at least one floor exceeded the drift limit.",
		}),
		floorsPerEval: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seismo_floors_per_evaluation",
			Help:    "Number of floors per evaluation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	reg.MustRegister(p.evaluations, p.floors, p.exceeded, p.floorsPerEval)
	return p
}

func (p *Prom) ObserveEvaluation(s drift.Summary) {
	p.evaluations.Inc()
	p.floors.Add(float64(s.FloorCount))
	p.floorsPerEval.Observe(float64(s.FloorCount))
	if s.LimitExceeded {
		p.exceeded.Inc()
	}
}
