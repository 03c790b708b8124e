// Package jsend writes JSON responses in the JSEND envelope:
// {"status": "success"|"fail"|"error", "data": ..., "message": ...}.
package jsend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// Statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response is the JSEND envelope.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Success writes 200 with data.
func Success(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Response{Status: StatusSuccess, Data: data})
}

// Created writes 201 with data.
func Created(w http.ResponseWriter, data any) {
	Write(w, http.StatusCreated, Response{Status: StatusSuccess, Data: data})
}

// Fail writes a client error with a message.
func Fail(w http.ResponseWriter, code int, message string) {
	Write(w, code, Response{Status: StatusFail, Data: map[string]string{"message": message}, Message: message})
}

// Error writes a server error.
func Error(w http.ResponseWriter, code int, message string) {
	Write(w, code, Response{Status: StatusError, Message: message})
}

// FromError maps a domain error to the matching status:
// validation and auth failures are 422, missing entities are 404 and anything else is 500.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Error(w, code, "internal server error")
		return
	}
	slog.Warn("Request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	Fail(w, code, err.Error())
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrAuth):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write encodes v with the given status code.
func Write(w http.ResponseWriter, code int, v Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
