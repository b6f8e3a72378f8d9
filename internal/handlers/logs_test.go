package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
)

func TestLogsHandler_NewestFirstAndFiltered(t *testing.T) {
	database, _ := newHandlerTestDB(t)
	base := time.Now().Truncate(time.Second)

	seed := []models.AuditLog{
		{ID: "older", Timestamp: base, AccountID: "a1", Action: models.ActionAuthenticate, Status: models.StatusSuccess},
		{ID: "newer", Timestamp: base.Add(time.Minute), AccountID: "a1", Action: models.ActionSendGift, Status: models.StatusSuccess},
		{ID: "other", Timestamp: base.Add(2 * time.Minute), AccountID: "a2", Action: models.ActionAuthenticate, Status: models.StatusError},
	}
	for i := range seed {
		if err := db.CreateAuditLog(database, &seed[i]); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	LogsHandler(database).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var logs []models.AuditLog
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(logs) != 3 || logs[0].ID != "other" || logs[2].ID != "older" {
		t.Errorf("logs not newest-first: %+v", logs)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/logs?accountId=a1&action=send_gift", nil)
	rec = httptest.NewRecorder()
	LogsHandler(database).ServeHTTP(rec, req)

	logs = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != "newer" {
		t.Errorf("filter returned %+v, want only the send_gift row of a1", logs)
	}
}
