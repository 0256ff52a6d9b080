package drift

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_SingleCompliantFloor(t *testing.T) {
	results, sum := Evaluate([]FloorInput{{Mass: 20000, Stiffness: 8000000, Force: 4000}}, DefaultLimit)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.0005, results[0].Drift, 1e-12)
	assert.True(t, results[0].Compliant)
	assert.Equal(t, 1, results[0].Floor)
	assert.False(t, sum.LimitExceeded)
	assert.InDelta(t, 0.0005, sum.MaxDrift, 1e-12)
	assert.Equal(t, 1, sum.MaxDriftFloor)
	assert.Equal(t, 1, sum.FloorCount)
}

func TestEvaluate_SecondFloorExceedsLimit(t *testing.T) {
	results, sum := Evaluate([]FloorInput{
		{Mass: 20000, Stiffness: 8000000, Force: 4000},
		{Mass: 20000, Stiffness: 8000000, Force: 50000},
	}, DefaultLimit)

	require.Len(t, results, 2)
	assert.InDelta(t, 0.0005, results[0].Drift, 1e-12)
	assert.InDelta(t, 0.00625, results[1].Drift, 1e-12)
	assert.True(t, results[0].Compliant)
	assert.False(t, results[1].Compliant)
	assert.True(t, sum.LimitExceeded)
	assert.InDelta(t, 0.00625, sum.MaxDrift, 1e-12)
	assert.Equal(t, 2, sum.MaxDriftFloor)
}

func TestEvaluate_ZeroStiffnessIsInfinite(t *testing.T) {
	results, sum := Evaluate([]FloorInput{{Stiffness: 0, Force: 100}}, DefaultLimit)

	require.Len(t, results, 1)
	assert.True(t, math.IsInf(results[0].Drift, 1))
	assert.False(t, results[0].Compliant)
	assert.True(t, sum.LimitExceeded)
	assert.True(t, math.IsInf(sum.MaxDrift, 1))
	assert.Equal(t, 1, sum.MaxDriftFloor)
}

func TestEvaluate_TieKeepsFirstFloor(t *testing.T) {
	_, sum := Evaluate([]FloorInput{
		{Stiffness: 1000, Force: 6},
		{Stiffness: 1000, Force: 1},
		{Stiffness: 1000, Force: 6},
	}, DefaultLimit)

	assert.Equal(t, 1, sum.MaxDriftFloor)
	assert.InDelta(t, 0.006, sum.MaxDrift, 1e-12)
	assert.True(t, sum.LimitExceeded)
}

func TestEvaluate_Empty(t *testing.T) {
	results, sum := Evaluate(nil, DefaultLimit)

	assert.Empty(t, results)
	assert.Equal(t, 0, sum.FloorCount)
	assert.Equal(t, 0, sum.MaxDriftFloor)
	assert.False(t, sum.LimitExceeded)
}

func TestEvaluate_BoundaryIsInclusive(t *testing.T) {
	results, sum := Evaluate([]FloorInput{{Stiffness: 2, Force: 0.01}}, DefaultLimit)

	assert.Equal(t, DefaultLimit, results[0].Drift)
	assert.True(t, results[0].Compliant)
	assert.False(t, sum.LimitExceeded)
}

func TestEvaluate_NegativeDriftsStillTrackMaximum(t *testing.T) {
	_, sum := Evaluate([]FloorInput{
		{Stiffness: 1, Force: -5},
		{Stiffness: 1, Force: -2},
		{Stiffness: 1, Force: -9},
	}, DefaultLimit)

	assert.Equal(t, 2, sum.MaxDriftFloor)
	assert.Equal(t, -2.0, sum.MaxDrift)
	assert.False(t, sum.LimitExceeded)
}

func TestEvaluate_Properties(t *testing.T) {
	floors := []FloorInput{
		{Stiffness: 8e6, Force: 4000},
		{Stiffness: 0, Force: 10},
		{Stiffness: 5e6, Force: 25000},
		{Stiffness: -4e6, Force: 100},
		{Stiffness: 3e6, Force: 20000},
	}
	results, sum := Evaluate(floors, DefaultLimit)

	require.Len(t, results, len(floors))
	anyFail := false
	for i, r := range results {
		assert.Equal(t, i+1, r.Floor)
		if floors[i].Stiffness != 0 {
			assert.InDelta(t, floors[i].Force/floors[i].Stiffness, r.Drift, 1e-12)
		}
		assert.Equal(t, r.Drift <= DefaultLimit, r.Compliant)
		assert.LessOrEqual(t, r.Drift, sum.MaxDrift)
		anyFail = anyFail || !r.Compliant
	}
	assert.Equal(t, anyFail, sum.LimitExceeded)
	assert.Equal(t, 2, sum.MaxDriftFloor)
}

func TestEvaluate_KeepsLabels(t *testing.T) {
	results, _ := Evaluate([]FloorInput{{Stiffness: 1, Force: 0, Label: "Roof"}, {Stiffness: 1}}, DefaultLimit)

	assert.Equal(t, "Roof", results[0].Name())
	assert.Equal(t, "2", results[1].Name())
}

func TestFloorResult_JSONInfiniteDrift(t *testing.T) {
	results, sum := Evaluate([]FloorInput{{Stiffness: 0, Force: 100}}, DefaultLimit)

	b, err := json.Marshal(results[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"floor":1,"drift_m":null,"infinite":true,"compliant":false}`, string(b))

	b, err = json.Marshal(sum)
	require.NoError(t, err)
	assert.JSONEq(t, `{"max_drift_m":null,"max_drift_infinite":true,"max_drift_floor":1,"limit_exceeded":true,"floor_count":1,"limit_m":0.005}`, string(b))
}

func TestFloorResult_JSONFiniteDrift(t *testing.T) {
	results, _ := Evaluate([]FloorInput{{Stiffness: 8000000, Force: 4000, Label: "L1"}}, DefaultLimit)

	b, err := json.Marshal(results[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"floor":1,"label":"L1","drift_m":0.0005,"compliant":true}`, string(b))
}
