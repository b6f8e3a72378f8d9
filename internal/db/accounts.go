package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// ListAccounts returns all accounts, newest first.
func ListAccounts(database *gorm.DB) ([]models.Account, error) {
	var accounts []models.Account
	err := database.Order("created_at desc").Find(&accounts).Error
	return accounts, err
}

// ListAuthenticatedAccounts returns only accounts with a live authentication.
func ListAuthenticatedAccounts(database *gorm.DB) ([]models.Account, error) {
	var accounts []models.Account
	err := database.Where("is_authenticated = ?", true).Order("created_at desc").Find(&accounts).Error
	return accounts, err
}

// GetAccount fetches one account by id.
func GetAccount(database *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	if err := database.First(&account, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &account, nil
}

// FindEligibleAccount picks an authenticated account for the given region.
// Task runs refuse to start without one.
func FindEligibleAccount(database *gorm.DB, region string) (*models.Account, error) {
	var account models.Account
	err := database.
		Where("region = ? AND is_authenticated = ?", region, true).
		Order("last_authenticated desc").
		First(&account).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &account, nil
}

// CreateAccount inserts a new account record.
func CreateAccount(database *gorm.DB, account *models.Account) error {
	return database.Create(account).Error
}

// UpdateAccount saves the full account record.
func UpdateAccount(database *gorm.DB, account *models.Account) error {
	res := database.Model(&models.Account{}).Where("id = ?", account.ID).Updates(map[string]any{
		"login":      account.Login,
		"password":   account.Password,
		"region":     account.Region,
		"updated_at": account.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAccountAuthenticated flips the authenticated flag and records when.
// The timestamp always moves forward because callers pass their current clock.
func MarkAccountAuthenticated(database *gorm.DB, id string, at time.Time) error {
	res := database.Model(&models.Account{}).Where("id = ?", id).Updates(map[string]any{
		"is_authenticated":   true,
		"last_authenticated": at,
		"updated_at":         at,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account and its dependent records.
func DeleteAccount(database *gorm.DB, id string) error {
	if err := database.Delete(&models.TwoFactorSecret{}, "account_id = ?", id).Error; err != nil {
		return err
	}
	if err := database.Delete(&models.Session{}, "account_id = ?", id).Error; err != nil {
		return err
	}
	res := database.Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
