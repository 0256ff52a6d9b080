package drift

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidFloorCount = errors.New("floor count must be positive")
	ErrNonNumericInput   = errors.New("non-numeric input")
	ErrInvalidLimit      = errors.New("drift limit must be a positive finite number")
)

// FloorFields is one row of raw form or sheet values.
type FloorFields struct {
	Mass      string
	Stiffness string
	Force     string
	Label     string
}

type FieldError struct {
	Floor int
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("floor %d: %s %q is not a number", e.Floor, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrNonNumericInput }

func ParseFloorCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrInvalidFloorCount
	}
	return n, nil
}

// ParseFloors converts raw rows into floor inputs. Nothing is returned
// unless every field of every row parses as a finite number.
func ParseFloors(rows []FloorFields) ([]FloorInput, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidFloorCount
	}
	floors := make([]FloorInput, 0, len(rows))
	for i, row := range rows {
		m, err := parseField(i+1, "mass", row.Mass)
		if err != nil {
			return nil, err
		}
		k, err := parseField(i+1, "stiffness", row.Stiffness)
		if err != nil {
			return nil, err
		}
		f, err := parseField(i+1, "force", row.Force)
		if err != nil {
			return nil, err
		}
		floors = append(floors, FloorInput{
			Mass:      m,
			Stiffness: k,
			Force:     f,
			Label:     strings.TrimSpace(row.Label),
		})
	}
	return floors, nil
}

func parseField(floor int, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Floor: floor, Field: field, Value: s}
	}
	return v, nil
}

// CheckLimit rejects a drift limit that is not a positive finite number.
func CheckLimit(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidLimit, v)
	}
	return nil
}

func ParseLimit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidLimit, s)
	}
	if err := CheckLimit(v); err != nil {
		return 0, err
	}
	return v, nil
}
