package models

import "time"

// Session is the cookie set captured after a successful sign-in, stored as a
// JSON-encoded list of "name=value" pairs. At most one row exists per account;
// a new sign-in replaces it.
type Session struct {
	ID         string    `gorm:"primaryKey" json:"id"` // UUID
	AccountID  string    `gorm:"uniqueIndex" json:"accountId"`
	Cookies    string    `json:"cookies"`
	CapturedAt time.Time `json:"capturedAt"`
}
