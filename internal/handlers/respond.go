package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tahsinahmed/photoclass-gobackend/internal/middleware"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// writeServiceError is the single error-to-response translator: malformed
// ids to 400, NotFound to 404, provider failures to 502, everything else a
// generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, primitive.ErrInvalidHex):
		writeError(w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrProvider):
		writeError(w, http.StatusBadGateway, "payment provider error")
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireSelf enforces the identity-scoping rule: the caller may only touch
// resources keyed by their own email. Returns false after writing the 403.
func requireSelf(w http.ResponseWriter, r *http.Request, email string) bool {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil || email != claims.Email {
		writeError(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}
