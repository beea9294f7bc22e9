package app

import (
	"errors"
	"net/http"

	"pulseboard/api/internal/domain"
)

// mapError translates a domain error kind into the HTTP status and
// code the dashboard renders. Anything that is not a domain error is a
// programmer error and maps to a generic 500.
func mapError(err error) (status int, code, message string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "SERVER_ERROR", "Server error"
	}
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", de.Message
	case domain.KindParse:
		return http.StatusBadRequest, "PARSE_ERROR", de.Message
	case domain.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND", de.Message
	case domain.KindAuth:
		return http.StatusUnauthorized, "AUTH_ERROR", de.Message
	case domain.KindRateLimit:
		return http.StatusTooManyRequests, "RATE_LIMITED", de.Message
	default:
		return http.StatusInternalServerError, "UNKNOWN_ERROR", de.Message
	}
}
