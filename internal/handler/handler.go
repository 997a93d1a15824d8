package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shoe-store/internal/middleware"
	"shoe-store/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error to an HTTP status and writes it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}
	writeError(w, r, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

// statusFor returns the HTTP status for a domain error code.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeShoeNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateSlug:
		return http.StatusConflict
	case model.ErrCodeInvalidShoe, model.ErrCodeUnknownSection, model.ErrCodeInvalidSort,
		model.ErrCodeInvalidParam, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
