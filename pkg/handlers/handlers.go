// Package handlers provides HTTP response utilities for JSON APIs.
// Every response is wrapped in a uniform envelope: successes carry
// {status, message, data}; failures carry {status, message, errors,
// timestamp, path} where errors is either an error tag or a map from
// field name to messages.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Fields maps a field name to its validation failure messages.
type Fields map[string][]string

// ValidationError carries field-keyed validation failures for a request.
type ValidationError struct {
	Fields Fields
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a ValidationError with an empty field map.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(Fields)}
}

// Add appends a failure message for the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no failures have been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

type successEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type failureEnvelope struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Errors    any    `json:"errors"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Error tags by status code, reported in the failure envelope when no
// field-level detail is available.
var errorTags = map[int]string{
	http.StatusBadRequest:   "ValidationError",
	http.StatusUnauthorized: "UnauthorizedError",
	http.StatusForbidden:    "ForbiddenError",
	http.StatusNotFound:     "NotFoundError",
	http.StatusConflict:     "ConflictError",
}

func errorTag(status int) string {
	if tag, ok := errorTags[status]; ok {
		return tag
	}
	return "UnknownError"
}

// Respond writes a success envelope with the given status, message, and data.
func Respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// RespondError writes a failure envelope. Server faults are logged and
// reported with a generic message; validation errors expose their
// field map.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	message := err.Error()
	var errs any = errorTag(status)

	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		message = "Validation failed"
		errs = validation.Fields
	case status >= http.StatusInternalServerError:
		logger.Error("handler error", "error", err, "status", status, "path", r.URL.Path)
		message = "Internal server error"
	default:
		logger.Warn("request failed", "error", err, "status", status, "path", r.URL.Path)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(failureEnvelope{
		Status:    status,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}
