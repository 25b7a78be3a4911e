package http

import (
	"encoding/json"
	"net/http"
	"time"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
)

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindPrecondition:
		return http.StatusUnprocessableEntity
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// message is the caller-facing text for err. Services only return domain
// errors, anything else is reported generically.
func message(err error) string {
	if de, ok := domain.AsError(err); ok {
		return de.Message
	}
	return domain.ErrInternal.Message
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg, Timestamp: time.Now().UTC()})
}
