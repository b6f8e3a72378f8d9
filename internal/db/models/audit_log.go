package models

import "time"

// Audit actions and statuses. Each completed step of a task run writes one
// success row; any failed run writes a single error row under the system
// account instead.
const (
	ActionAuthenticate = "authenticate"
	ActionAddFriend    = "add_friend"
	ActionSendGift     = "send_gift"

	StatusSuccess = "success"
	StatusError   = "error"

	// SystemAccountID marks audit rows not attributable to a stored account.
	SystemAccountID = "system"
)

// AuditLog is one audit trail row. Timestamps and ids are set by the writer,
// never by the store.
type AuditLog struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	AccountID string    `gorm:"index" json:"accountId"`
	Action    string    `gorm:"index" json:"action"`
	Status    string    `json:"status"`
	Details   string    `json:"details,omitempty"`
}
