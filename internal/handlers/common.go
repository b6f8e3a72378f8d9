// Package handlers contains the chi handler factories for the relay's HTTP
// surface: account/gift CRUD, two-factor provisioning, audit queries, the
// authenticate endpoint and the task webhook.
package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
