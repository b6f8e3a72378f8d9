package models

import "time"

// Gift is a purchasable store item the relay can send to a profile. Link must
// point at the store; the purchase flow navigates to it with an authenticated
// session.
type Gift struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
