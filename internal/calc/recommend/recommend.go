package recommend

import (
	"fmt"
	"math"

	"Seismo/internal/calc/drift"
)

type StiffnessAdvice struct {
	Floor             int     `json:"floor"`
	Label             string  `json:"label,omitempty"`
	CurrentStiffness  float64 `json:"current_stiffness"`
	RequiredStiffness float64 `json:"required_stiffness"`
	Increase          float64 `json:"increase"` // required / current, 0 when current is zero
	Notes             string  `json:"notes"`
}

// Stiffness returns, for every floor that fails the drift check, the lateral
// stiffness at which its drift would equal the limit: K = |F| / limit.
func Stiffness(floors []drift.FloorInput, results []drift.FloorResult, limit float64) ([]StiffnessAdvice, error) {
	if len(floors) != len(results) {
		return nil, fmt.Errorf("floors and results differ in length: %d != %d", len(floors), len(results))
	}
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %v", limit)
	}

	advice := make([]StiffnessAdvice, 0)
	for i, res := range results {
		if res.Compliant {
			continue
		}
		f := floors[i]
		required := math.Abs(f.Force) / limit
		a := StiffnessAdvice{
			Floor:             res.Floor,
			Label:             res.Label,
			CurrentStiffness:  f.Stiffness,
			RequiredStiffness: required,
			Notes:             "Increase lateral stiffness or redistribute mass.",
		}
		switch {
		case f.Stiffness > 0:
			a.Increase = required / f.Stiffness
		case f.Stiffness == 0:
			a.Notes = "Floor has no lateral stiffness."
		default:
			a.Notes = "Negative stiffness, check the input."
		}
		advice = append(advice, a)
	}
	return advice, nil
}
