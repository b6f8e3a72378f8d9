package db

import (
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db/models"
)

// ListGifts returns all gifts, newest first.
func ListGifts(database *gorm.DB) ([]models.Gift, error) {
	var gifts []models.Gift
	err := database.Order("created_at desc").Find(&gifts).Error
	return gifts, err
}

// GetGift fetches one gift by id.
func GetGift(database *gorm.DB, id string) (*models.Gift, error) {
	var gift models.Gift
	if err := database.First(&gift, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &gift, nil
}

// CreateGift inserts a new gift record.
func CreateGift(database *gorm.DB, gift *models.Gift) error {
	return database.Create(gift).Error
}

// UpdateGift saves the mutable gift fields.
func UpdateGift(database *gorm.DB, gift *models.Gift) error {
	res := database.Model(&models.Gift{}).Where("id = ?", gift.ID).Updates(map[string]any{
		"title":      gift.Title,
		"link":       gift.Link,
		"price":      gift.Price,
		"updated_at": gift.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGift removes a gift.
func DeleteGift(database *gorm.DB, id string) error {
	res := database.Delete(&models.Gift{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
