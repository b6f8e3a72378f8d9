package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db"
)

// GetSessionHandler returns the stored cookie session for an account.
func GetSessionHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "id")
		session, err := db.GetSession(database, accountID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no session for account")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch session")
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

// DeleteSessionHandler discards the stored session for an account.
func DeleteSessionHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "id")
		if err := db.DeleteSession(database, accountID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no session for account")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to delete session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
