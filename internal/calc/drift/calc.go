package drift

import (
	"encoding/json"
	"math"
	"strconv"
)

// DefaultLimit is the regulatory drift limit in meters.
const DefaultLimit = 0.005

type FloorInput struct {
	Mass      float64 `json:"mass"`      // kg
	Stiffness float64 `json:"stiffness"` // N/m
	Force     float64 `json:"force"`     // N
	Label     string  `json:"label,omitempty"`
}

type FloorResult struct {
	Floor     int     `json:"floor"`
	Label     string  `json:"label,omitempty"`
	Drift     float64 `json:"drift_m"`
	Compliant bool    `json:"compliant"`
}

type Summary struct {
	MaxDrift      float64 `json:"max_drift_m"`
	MaxDriftFloor int     `json:"max_drift_floor"` // 0 when there are no floors
	LimitExceeded bool    `json:"limit_exceeded"`
	FloorCount    int     `json:"floor_count"`
	Limit         float64 `json:"limit_m"`
}

// Evaluate computes the drift of every floor and compares it with limit.
// A floor with zero stiffness has an infinite drift and never complies.
func Evaluate(floors []FloorInput, limit float64) ([]FloorResult, Summary) {
	results := make([]FloorResult, 0, len(floors))
	sum := Summary{FloorCount: len(floors), Limit: limit}

	for i, f := range floors {
		d := math.Inf(1)
		if f.Stiffness != 0 {
			d = f.Force / f.Stiffness
		}
		ok := d <= limit
		results = append(results, FloorResult{
			Floor:     i + 1,
			Label:     f.Label,
			Drift:     d,
			Compliant: ok,
		})

		// strict > keeps the first floor on ties
		if sum.MaxDriftFloor == 0 || d > sum.MaxDrift {
			sum.MaxDrift = d
			sum.MaxDriftFloor = i + 1
		}
		if !ok {
			sum.LimitExceeded = true
		}
	}
	return results, sum
}

// Name returns the label of the floor or its 1-based number.
func (r FloorResult) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return strconv.Itoa(r.Floor)
}

func (r FloorResult) MarshalJSON() ([]byte, error) {
	type alias FloorResult
	return json.Marshal(struct {
		alias
		Drift    *float64 `json:"drift_m"`
		Infinite bool     `json:"infinite,omitempty"`
	}{
		alias:    alias(r),
		Drift:    finite(r.Drift),
		Infinite: math.IsInf(r.Drift, 0),
	})
}

func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	return json.Marshal(struct {
		alias
		MaxDrift *float64 `json:"max_drift_m"`
		Infinite bool     `json:"max_drift_infinite,omitempty"`
	}{
		alias:    alias(s),
		MaxDrift: finite(s.MaxDrift),
		Infinite: math.IsInf(s.MaxDrift, 0),
	})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
