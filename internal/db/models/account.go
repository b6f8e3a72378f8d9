package models

import "time"

// Account is a storefront account the relay can drive. Password holds the
// encrypted token produced by internal/crypto, never the plaintext, and is
// excluded from every JSON response.
type Account struct {
	ID                string     `gorm:"primaryKey" json:"id"` // UUID
	Login             string     `gorm:"index" json:"login"`
	Password          string     `json:"-"`
	Region            string     `gorm:"index" json:"region"` // e.g., "EU", "US"
	IsAuthenticated   bool       `gorm:"default:false" json:"isAuthenticated"`
	LastAuthenticated *time.Time `json:"lastAuthenticated,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
