// Package vault mediates every read of account credentials and two-factor
// secrets. Password decryption happens here and nowhere else; the engine only
// ever sees the plaintext for the duration of one sign-in.
package vault

import (
	"time"

	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/crypto"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
)

// Vault wraps the record store and the process-wide cipher key.
type Vault struct {
	database *gorm.DB
	key      []byte
}

// New builds a Vault. The key must be a valid AES-256 key; it is loaded once
// at startup and never logged.
func New(database *gorm.DB, key []byte) *Vault {
	return &Vault{database: database, key: key}
}

// GetAccount fetches one account. Returns db.ErrNotFound when absent.
func (v *Vault) GetAccount(id string) (*models.Account, error) {
	return db.GetAccount(v.database, id)
}

// GetSecondFactor fetches the two-factor secret provisioned for an account.
// Returns db.ErrNotFound when none exists.
func (v *Vault) GetSecondFactor(accountID string) (*models.TwoFactorSecret, error) {
	return db.GetTwoFactorSecret(v.database, accountID)
}

// DecryptPassword recovers the plaintext password from a stored token.
// Returns crypto.ErrDecryptionFailed on malformed tokens or a key mismatch.
func (v *Vault) DecryptPassword(token string) (string, error) {
	return crypto.Decrypt(v.key, token)
}

// EncryptPassword produces a fresh token for storage.
func (v *Vault) EncryptPassword(plaintext string) (string, error) {
	return crypto.Encrypt(v.key, plaintext)
}

// MarkAuthenticated records a successful sign-in at the given instant.
func (v *Vault) MarkAuthenticated(accountID string, at time.Time) error {
	return db.MarkAccountAuthenticated(v.database, accountID, at)
}
