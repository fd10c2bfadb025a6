package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alexanderramin/jardin/internal/domain"
	"go.uber.org/zap"
)

const maxBodyBytes = 1_048_576

// APIResponse is the envelope of every successful response.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &ErrorResponse{Error: message})
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func (s *Server) respond(w http.ResponseWriter, status int, message string, data any) {
	resp := &APIResponse[any]{Success: true, Message: message, Data: data}
	if err := writeJSON(w, status, resp); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// badRequest answers a body that could not be decoded.
func (s *Server) badRequest(w http.ResponseWriter, err error) {
	writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// fail maps a service error onto its HTTP status. Internal errors are logged
// and never echoed to the caller.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSONError(w, status, "internal server error")
		return
	}
	writeJSONError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrDuplicatePlan), isConstraint(err):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoTasksDone):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// isConstraint reports a SQLite constraint violation, such as deleting a
// catalog plan still referenced by a quote.
func isConstraint(err error) bool {
	return strings.Contains(err.Error(), "constraint failed")
}
