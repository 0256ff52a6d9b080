package metrics

import (
	"testing"

	"Seismo/internal/calc/drift"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProm_ObserveEvaluation(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProm(reg)

	_, ok := drift.Evaluate([]drift.FloorInput{{Stiffness: 8000000, Force: 4000}}, drift.DefaultLimit)
	_, bad := drift.Evaluate([]drift.FloorInput{{Stiffness: 1, Force: 1}, {Stiffness: 0, Force: 1}}, drift.DefaultLimit)
	p.ObserveEvaluation(ok)
	p.ObserveEvaluation(bad)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.evaluations))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.floors))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.exceeded))
	assert.Equal(t, 1, testutil.CollectAndCount(p.floorsPerEval))
}

func TestProm_ImplementsRecorder(t *testing.T) {
	var _ drift.Recorder = NewProm(prometheus.NewRegistry())
}
