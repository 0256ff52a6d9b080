package recommend

import (
	"encoding/json"
	"log"
	"net/http"

	"Seismo/internal/calc/drift"
)

type Handler struct {
	Limit float64
}

type Response struct {
	Advice []StiffnessAdvice `json:"advice"`
}

func (h *Handler) Stiffness(w http.ResponseWriter, r *http.Request) {
	var req drift.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := req.LimitOr(h.Limit)
	results, _ := drift.Evaluate(req.Floors, limit)
	advice, err := Stiffness(req.Floors, results, limit)
	if err != nil {
		log.Printf("recommend: %v", err)
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	drift.WriteJSON(w, Response{Advice: advice})
}
