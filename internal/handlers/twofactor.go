package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/guard"
)

type twoFactorRequest struct {
	SharedSecret   string `json:"sharedSecret"`
	RevocationCode string `json:"revocationCode"`
	IdentitySecret string `json:"identitySecret"`
}

// SetupTwoFactorHandler provisions the second-factor secret for an account,
// replacing any existing one. The shared secret must decode or the request is
// rejected, so the sign-in flow never trips over an unusable secret.
func SetupTwoFactorHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "id")
		if _, err := db.GetAccount(database, accountID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch account")
			return
		}

		var req twoFactorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SharedSecret == "" {
			writeError(w, http.StatusBadRequest, "sharedSecret is required")
			return
		}
		if _, err := guard.DecodeSecret(req.SharedSecret); err != nil {
			writeError(w, http.StatusBadRequest, "sharedSecret is not a decodable secret")
			return
		}

		secret := models.TwoFactorSecret{
			ID:             uuid.New().String(),
			AccountID:      accountID,
			SharedSecret:   req.SharedSecret,
			RevocationCode: req.RevocationCode,
			IdentitySecret: req.IdentitySecret,
			CreatedAt:      time.Now(),
		}
		if err := db.ReplaceTwoFactorSecret(database, &secret); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to set up two-factor secret")
			return
		}
		writeJSON(w, http.StatusCreated, secret)
	}
}

// RemoveTwoFactorHandler deletes the second-factor secret for an account.
func RemoveTwoFactorHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "id")
		if err := db.DeleteTwoFactorSecret(database, accountID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "no two-factor secret for account")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to remove two-factor secret")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
