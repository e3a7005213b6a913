package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	defaultLatestLimit = 50
	maxLatestLimit     = 200
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/audit", latestEventsHandler(svc))
}

type eventResponse struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func latestEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The trail itself does not clamp; that is this layer's contract.
		limit := defaultLatestLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			limit = n
		}
		if limit < 1 {
			limit = 1
		}
		if limit > maxLatestLimit {
			limit = maxLatestLimit
		}

		events, err := svc.Latest(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, eventResponse{
				ID:         e.ID,
				Timestamp:  e.Timestamp,
				Actor:      e.Actor,
				Action:     e.Action,
				EntityType: e.EntityType,
				EntityID:   e.EntityID,
				Metadata:   e.Metadata,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
