package handlers

import (
	"net/http"

	"github.com/pysugar/gift-relay/internal/version"
)

// HealthHandler reports liveness and the running build.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.Version,
			"commit":  version.Commit,
		})
	}
}
