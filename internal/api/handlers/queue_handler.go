package handlers

import (
	"context"
	"net/http"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// QueueViewService defines the queue projection operations used by the
// handler.
type QueueViewService interface {
	View(ctx context.Context, viewerID string) (*entities.QueueView, error)
}

// QueueHandler serves projected views of the shared queue.
type QueueHandler struct {
	service QueueViewService
}

// NewQueueHandler creates a new queue handler.
func NewQueueHandler(service QueueViewService) *QueueHandler {
	return &QueueHandler{service: service}
}

// ListQueue handles GET /api/patients
// An optional highlight (or patient_id) query parameter flags the viewer's
// row.
func (h *QueueHandler) ListQueue(w http.ResponseWriter, r *http.Request) {
	viewerID := viewerIDFromQuery(r)

	view, err := h.service.View(r.Context(), viewerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queue": view.Rows,
		"count": len(view.Rows),
	})
}

// ViewQueue handles GET /api/queue?patient_id=...
// Unlike ListQueue it returns the full projection including the viewer's
// placement summary and the degraded placeholder when absent.
func (h *QueueHandler) ViewQueue(w http.ResponseWriter, r *http.Request) {
	viewerID := viewerIDFromQuery(r)

	view, err := h.service.View(r.Context(), viewerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func viewerIDFromQuery(r *http.Request) string {
	if id := r.URL.Query().Get("highlight"); id != "" {
		return id
	}
	return r.URL.Query().Get("patient_id")
}
