package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db"
)

// LogsHandler returns audit rows newest first, optionally filtered by
// accountId and action query parameters.
func LogsHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("accountId")
		action := r.URL.Query().Get("action")

		logs, err := db.ListAuditLogs(database, accountID, action)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch logs")
			return
		}
		writeJSON(w, http.StatusOK, logs)
	}
}
