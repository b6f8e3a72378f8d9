package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/logging"
	"github.com/pysugar/gift-relay/internal/pipeline"
)

// WebhookHandler triggers one task run: authenticate, befriend the profile,
// send the gift. The response mirrors the pipeline result; HTTP 500 signals
// any failed run, with the detail already written to the audit log.
func WebhookHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pipeline.TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ProfileLink == "" || req.Region == "" {
			writeError(w, http.StatusBadRequest, "profileLink and region are required")
			return
		}

		result := p.Run(r.Context(), req)
		if result.Status != models.StatusSuccess {
			log.Printf("task run failed (request %s): %s",
				logging.GetRequestID(r.Context()), result.Message)
			writeJSON(w, http.StatusInternalServerError, result)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
