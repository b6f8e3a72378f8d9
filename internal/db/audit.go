package db

import (
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// CreateAuditLog appends one audit row. Rows are never updated or deleted.
func CreateAuditLog(database *gorm.DB, entry *models.AuditLog) error {
	return database.Create(entry).Error
}

// ListAuditLogs returns audit rows newest first, optionally filtered by
// account and action.
func ListAuditLogs(database *gorm.DB, accountID, action string) ([]models.AuditLog, error) {
	query := database.Order("timestamp desc")
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.AuditLog
	err := query.Find(&logs).Error
	return logs, err
}
