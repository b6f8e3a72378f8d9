package db

import (
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// GetTwoFactorSecret fetches the secret provisioned for an account.
func GetTwoFactorSecret(database *gorm.DB, accountID string) (*models.TwoFactorSecret, error) {
	var secret models.TwoFactorSecret
	if err := database.First(&secret, "account_id = ?", accountID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &secret, nil
}

// ReplaceTwoFactorSecret installs a secret for an account, removing any
// previous one first. Secrets are immutable, so replacement is the only
// supported mutation.
func ReplaceTwoFactorSecret(database *gorm.DB, secret *models.TwoFactorSecret) error {
	if err := database.Delete(&models.TwoFactorSecret{}, "account_id = ?", secret.AccountID).Error; err != nil {
		return err
	}
	return database.Create(secret).Error
}

// DeleteTwoFactorSecret removes the secret for an account.
func DeleteTwoFactorSecret(database *gorm.DB, accountID string) error {
	res := database.Delete(&models.TwoFactorSecret{}, "account_id = ?", accountID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
