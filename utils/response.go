package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithMessage sends the standard error/confirmation envelope.
func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"message": message})
}

// RespondWithError carries the underlying detail alongside the message.
// Used on 500s only; fine for a demo API, a hardened variant would drop it.
func RespondWithError(w http.ResponseWriter, statusCode int, message string, err error) {
	RespondWithJSON(w, statusCode, map[string]string{
		"message": message,
		"error":   err.Error(),
	})
}

type M map[string]interface{}
