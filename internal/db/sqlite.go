// Package db wraps the SQLite record store. Every collection the relay
// persists (accounts, gifts, audit logs, two-factor secrets, sessions) is
// accessed through the free functions in this package; creation timestamps are
// always set by the caller, never by the store.
package db

import (
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// ErrNotFound is returned by every lookup whose target record is absent.
var ErrNotFound = errors.New("record not found")

// InitDB opens the SQLite database and runs migrations.
func InitDB(dbPath string) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Account{},
		&models.Gift{},
		&models.AuditLog{},
		&models.TwoFactorSecret{},
		&models.Session{},
	); err != nil {
		return nil, err
	}

	return database, nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
