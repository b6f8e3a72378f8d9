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
	"github.com/pysugar/gift-relay/internal/vault"
)

type accountRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Region   string `json:"region"`
}

// ListAccountsHandler returns all accounts.
func ListAccountsHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := db.ListAccounts(database)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch accounts")
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

// ListAuthenticatedAccountsHandler returns only accounts with a live
// authentication, for the dashboard's eligibility view.
func ListAuthenticatedAccountsHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := db.ListAuthenticatedAccounts(database)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch accounts")
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

// GetAccountHandler returns one account.
func GetAccountHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		account, err := db.GetAccount(database, id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch account")
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

// CreateAccountHandler registers a new account. The password is encrypted
// before it ever reaches the store and never appears in responses.
func CreateAccountHandler(database *gorm.DB, v *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Login == "" || req.Password == "" || req.Region == "" {
			writeError(w, http.StatusBadRequest, "login, password and region are required")
			return
		}

		token, err := v.EncryptPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encrypt password")
			return
		}

		now := time.Now()
		account := models.Account{
			ID:              uuid.New().String(),
			Login:           req.Login,
			Password:        token,
			Region:          req.Region,
			IsAuthenticated: false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := db.CreateAccount(database, &account); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create account")
			return
		}
		writeJSON(w, http.StatusCreated, account)
	}
}

// UpdateAccountHandler updates login, region and optionally the password.
func UpdateAccountHandler(database *gorm.DB, v *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req accountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Login == "" || req.Region == "" {
			writeError(w, http.StatusBadRequest, "login and region are required")
			return
		}

		account, err := db.GetAccount(database, id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch account")
			return
		}

		account.Login = req.Login
		account.Region = req.Region
		if req.Password != "" {
			token, err := v.EncryptPassword(req.Password)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to encrypt password")
				return
			}
			account.Password = token
		}
		account.UpdatedAt = time.Now()

		if err := db.UpdateAccount(database, account); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update account")
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

// DeleteAccountHandler removes an account and its secrets and session.
func DeleteAccountHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := db.DeleteAccount(database, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to delete account")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
