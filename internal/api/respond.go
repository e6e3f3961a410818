package api

import (
	"encoding/json"
	"net/http"

	apperrors "lenslight/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps err onto the {error: message} body the clients expect.
// Anything that is not a deliberate HTTPError collapses to a generic 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.StatusOf(err), map[string]string{
		"error": apperrors.MessageOf(err),
	})
}
