package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/crypto"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/vault"
)

var handlerTestKey = []byte("0123456789abcdef0123456789abcdef")

func newHandlerTestDB(t *testing.T) (*gorm.DB, *vault.Vault) {
	t.Helper()
	database, err := db.InitDB("file:" + uuid.New().String() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return database, vault.New(database, handlerTestKey)
}

func seedTestAccount(t *testing.T, database *gorm.DB, region string, authenticated bool) *models.Account {
	t.Helper()
	token, err := crypto.Encrypt(handlerTestKey, "hunter2")
	if err != nil {
		t.Fatalf("encrypt password: %v", err)
	}
	now := time.Now()
	account := &models.Account{
		ID: uuid.New().String(), Login: "tester", Password: token,
		Region: region, IsAuthenticated: authenticated,
		CreatedAt: now, UpdatedAt: now,
	}
	if authenticated {
		account.LastAuthenticated = &now
	}
	if err := db.CreateAccount(database, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}
