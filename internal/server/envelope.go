package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
)

// Envelope is the JSON wrapper returned by every API endpoint.
type Envelope struct {
	OK           bool   `json:"ok"`
	Data         any    `json:"data,omitempty"`
	RowsAffected *int64 `json:"rowsAffected,omitempty"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}

func rows(n int64) *int64 {
	return &n
}

func writeJSON(writer http.ResponseWriter, req *http.Request, log *slog.Logger, status int, body Envelope) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		log.ErrorContext(req.Context(), "Failed to write response", sl.Err(err))
	}
}

func writeError(writer http.ResponseWriter, req *http.Request, log *slog.Logger, status int, message string) {
	writeJSON(writer, req, log, status, Envelope{OK: false, Error: message})
}
