package models

import "time"

// TwoFactorSecret holds the second-factor material provisioned for an
// account. SharedSecret stays in its encoded transport form; the sign-in flow
// decodes it only at code-generation time. At most one row exists per account.
type TwoFactorSecret struct {
	ID             string    `gorm:"primaryKey" json:"id"` // UUID
	AccountID      string    `gorm:"uniqueIndex" json:"accountId"`
	SharedSecret   string    `json:"sharedSecret"`
	RevocationCode string    `json:"revocationCode,omitempty"`
	IdentitySecret string    `json:"identitySecret,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
