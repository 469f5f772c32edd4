package controller

import (
	"encoding/json"
	"net/http"
	"strings"
)

func wrap(handler http.Handler, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware != nil {
		return authMiddleware(handler)
	}
	return handler
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForFailure maps the service envelope message onto an HTTP status.
// Services put the failure class in Message, so the mapping keys off it the
// same way across controllers.
func statusForFailure(message string) int {
	switch {
	case message == "validation failed" || strings.HasPrefix(message, "invalid request"):
		return http.StatusBadRequest
	case strings.HasSuffix(message, "not found"):
		return http.StatusNotFound
	case message == "invalid pin":
		return http.StatusUnauthorized
	case message == "account not empty" || strings.HasSuffix(message, "failed") && !strings.HasPrefix(message, "failed to"):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
