package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
)

func TestSessionHandlers(t *testing.T) {
	database, _ := newHandlerTestDB(t)
	account := seedTestAccount(t, database, "EU", true)

	err := db.ReplaceSession(database, &models.Session{
		ID:         uuid.New().String(),
		AccountID:  account.ID,
		Cookies:    `["sessionid=abc"]`,
		CapturedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	router := chi.NewRouter()
	router.Get("/api/accounts/{id}/session", GetSessionHandler(database))
	router.Delete("/api/accounts/{id}/session", DeleteSessionHandler(database))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+account.ID+"/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/accounts/"+account.ID+"/session", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/accounts/"+account.ID+"/session", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
