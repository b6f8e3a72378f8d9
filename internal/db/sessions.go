package db

import (
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// GetSession fetches the stored session for an account.
func GetSession(database *gorm.DB, accountID string) (*models.Session, error) {
	var session models.Session
	if err := database.First(&session, "account_id = ?", accountID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &session, nil
}

// ReplaceSession stores a freshly captured session, dropping any previous one
// for the same account.
func ReplaceSession(database *gorm.DB, session *models.Session) error {
	if err := database.Delete(&models.Session{}, "account_id = ?", session.AccountID).Error; err != nil {
		return err
	}
	return database.Create(session).Error
}

// DeleteSession removes the stored session for an account.
func DeleteSession(database *gorm.DB, accountID string) error {
	res := database.Delete(&models.Session{}, "account_id = ?", accountID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
