package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
)

// storeLinkPrefix is the only origin gift links may point at; the purchase
// flow navigates to this link with an authenticated session.
const storeLinkPrefix = "https://store.steampowered.com/"

type giftRequest struct {
	Title string   `json:"title"`
	Link  string   `json:"link"`
	Price *float64 `json:"price"`
}

func (g *giftRequest) validate() string {
	if g.Title == "" || g.Link == "" || g.Price == nil {
		return "title, link and price are required"
	}
	if *g.Price < 0 {
		return "price must not be negative"
	}
	if !strings.HasPrefix(g.Link, storeLinkPrefix) {
		return "link must point at the store"
	}
	return ""
}

// ListGiftsHandler returns all gifts.
func ListGiftsHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gifts, err := db.ListGifts(database)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch gifts")
			return
		}
		writeJSON(w, http.StatusOK, gifts)
	}
}

// GetGiftHandler returns one gift.
func GetGiftHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		gift, err := db.GetGift(database, id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "gift not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to fetch gift")
			return
		}
		writeJSON(w, http.StatusOK, gift)
	}
}

// CreateGiftHandler registers a new gift.
func CreateGiftHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req giftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		now := time.Now()
		gift := models.Gift{
			ID:        uuid.New().String(),
			Title:     req.Title,
			Link:      req.Link,
			Price:     *req.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.CreateGift(database, &gift); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create gift")
			return
		}
		writeJSON(w, http.StatusCreated, gift)
	}
}

// UpdateGiftHandler updates a gift record.
func UpdateGiftHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req giftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		gift := models.Gift{
			ID:        id,
			Title:     req.Title,
			Link:      req.Link,
			Price:     *req.Price,
			UpdatedAt: time.Now(),
		}
		if err := db.UpdateGift(database, &gift); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "gift not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to update gift")
			return
		}
		writeJSON(w, http.StatusOK, gift)
	}
}

// DeleteGiftHandler removes a gift.
func DeleteGiftHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := db.DeleteGift(database, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "gift not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to delete gift")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
