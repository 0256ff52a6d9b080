package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"Seismo/internal/calc/drift"
	"Seismo/internal/calc/recommend"
)

type Input struct {
	drift.Request
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

type Handler struct {
	Drift *drift.Handler
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Input, drift.Response, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return input, drift.Response{}, false
	}
	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return input, drift.Response{}, false
	}
	return input, h.Drift.Run(input.Floors, input.LimitOr(h.Drift.Limit)), true
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	input, res, ok := h.decode(w, r)
	if !ok {
		return
	}
	advice, err := recommend.Stiffness(input.Floors, res.Results, res.Summary.Limit)
	if err != nil {
		log.Printf("report advice: %v", err)
	}

	doc := Document{
		Title:   input.Title,
		Project: input.Project,
		Author:  input.Author,
		Notes:   input.Notes,
		Results: res.Results,
		Summary: res.Summary,
		Advice:  advice,
	}
	attach(w, "application/pdf", "drift_report.pdf", func(w io.Writer) error { return PDF(w, doc) })
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.decode(w, r)
	if !ok {
		return
	}
	attach(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "drift_report.xlsx",
		func(w io.Writer) error { return XLSX(w, res.Results, res.Summary) })
}

// attach renders the document fully before setting any download header.
func attach(w http.ResponseWriter, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.Printf("report %s: %v", filename, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("report %s: %v", filename, err)
	}
}
