package drift

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Recorder observes finished evaluations.
type Recorder interface {
	ObserveEvaluation(Summary)
}

type Request struct {
	Floors []FloorInput `json:"floors"`
	Limit  float64      `json:"limit"`
}

type Response struct {
	Results []FloorResult `json:"results"`
	Summary Summary       `json:"summary"`
}

type Handler struct {
	Limit   float64
	Metrics Recorder
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	WriteJSON(w, h.Run(req.Floors, req.LimitOr(h.Limit)))
}

// Run evaluates floors and reports the outcome to the recorder, if any.
func (h *Handler) Run(floors []FloorInput, limit float64) Response {
	results, sum := Evaluate(floors, limit)
	if h.Metrics != nil {
		h.Metrics.ObserveEvaluation(sum)
	}
	return Response{Results: results, Summary: sum}
}

func (req Request) Validate() error {
	if len(req.Floors) == 0 {
		return ErrInvalidFloorCount
	}
	return nil
}

// LimitOr returns the requested limit, or fallback when none was given.
func (req Request) LimitOr(fallback float64) float64 {
	if req.Limit > 0 {
		return req.Limit
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultLimit
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// StatusFor maps collector errors to HTTP status codes.
func StatusFor(err error) int {
	if errors.Is(err, ErrInvalidFloorCount) || errors.Is(err, ErrNonNumericInput) || errors.Is(err, ErrInvalidLimit) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
