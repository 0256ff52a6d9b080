package importer

import (
	"errors"
	"log"
	"net/http"

	"Seismo/internal/calc/drift"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Drift *drift.Handler
}

// Floors evaluates the floor table uploaded in the "file" form field. An
// optional "limit" field overrides the configured drift limit.
func (h *Handler) Floors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadFloors(file)
	if err != nil {
		log.Printf("import: %v", err)
		if errors.Is(err, ErrEmptySheet) {
			http.Error(w, "Empty sheet", http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	floors, err := drift.ParseFloors(rows)
	if err != nil {
		http.Error(w, err.Error(), drift.StatusFor(err))
		return
	}
	req := drift.Request{Floors: floors}
	if v := r.FormValue("limit"); v != "" {
		if req.Limit, err = drift.ParseLimit(v); err != nil {
			http.Error(w, err.Error(), drift.StatusFor(err))
			return
		}
	}
	drift.WriteJSON(w, h.Drift.Run(req.Floors, req.LimitOr(h.Drift.Limit)))
}
