// Package respond writes the JSON bodies every endpoint returns. Success
// payloads carry a "message" plus the affected resource; errors carry the
// message alone, with the HTTP status distinguishing validation (400),
// authorization (403), not-found (404), and unexpected (500) failures.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes a {"message": ...} body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}
