package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/domain"
)

// tableBody is the JSON shape of every record list
type tableBody struct {
	Columns []string         `json:"columns"`
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
}

func writeTable(w http.ResponseWriter, t render.Table) {
	writeJSON(w, http.StatusOK, tableBody{
		Columns: t.Columns,
		Count:   len(t.Rows),
		Records: t.Records(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError converts domain errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody(err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidHolding),
		errors.Is(err, domain.ErrUnknownMetric):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
