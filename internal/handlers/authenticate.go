package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/auth"
	"github.com/pysugar/gift-relay/internal/browser"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/logging"
	"github.com/pysugar/gift-relay/internal/util"
	"github.com/pysugar/gift-relay/internal/vault"
)

type authenticateRequest struct {
	AccountID string `json:"accountId"`
}

// AuthenticateAccountHandler signs one account in on demand. On success the
// account is marked authenticated, the cookie set is stored as the account's
// session and returned to the caller; either way an audit row is written.
func AuthenticateAccountHandler(database *gorm.DB, v *vault.Vault, newDriver func() (browser.SessionDriver, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authenticateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountID == "" {
			writeError(w, http.StatusBadRequest, "accountId is required")
			return
		}

		account, err := db.GetAccount(database, req.AccountID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch account")
			return
		}

		driver, err := newDriver()
		if err != nil {
			recordAuthFailure(database, err)
			writeError(w, http.StatusInternalServerError, "failed to acquire browser")
			return
		}
		defer driver.Close()

		engine := auth.NewEngine(driver, v, nil)
		res := engine.Authenticate(r.Context(), account)
		if !res.Success {
			log.Printf("authentication failed for %s (request %s): %v",
				account.Login, logging.GetRequestID(r.Context()), res.Err)
			recordAuthFailure(database, res.Err)
			writeError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		now := time.Now()
		if err := v.MarkAuthenticated(account.ID, now); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update account")
			return
		}
		if data, err := json.Marshal(res.Cookies); err == nil {
			_ = db.ReplaceSession(database, &models.Session{
				ID:         uuid.New().String(),
				AccountID:  account.ID,
				Cookies:    string(data),
				CapturedAt: now,
			})
		}
		_ = db.CreateAuditLog(database, &models.AuditLog{
			ID:        uuid.New().String(),
			Timestamp: now,
			AccountID: account.ID,
			Action:    models.ActionAuthenticate,
			Status:    models.StatusSuccess,
			Details:   "successfully authenticated",
		})

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"cookies": res.Cookies,
		})
	}
}

func recordAuthFailure(database *gorm.DB, cause error) {
	details := "authentication failed"
	if cause != nil {
		details = cause.Error()
	}
	_ = db.CreateAuditLog(database, &models.AuditLog{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		AccountID: models.SystemAccountID,
		Action:    models.ActionAuthenticate,
		Status:    models.StatusError,
		Details:   util.TruncateDetails(details, util.DefaultDetailsMaxLen),
	})
}
