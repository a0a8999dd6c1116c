package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// IntakeAuditReader defines the audit read operations used by the handler.
type IntakeAuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]*entities.IntakeEvent, error)
	CountByOutcome(ctx context.Context) (map[string]int, error)
}

// AuditHandler serves the operator view over recorded intake attempts.
type AuditHandler struct {
	reader IntakeAuditReader
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(reader IntakeAuditReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// IntakeStats handles GET /api/intake/stats
// It returns intake counts grouped by outcome plus the most recent attempts,
// newest first. An optional limit query parameter bounds the event list.
func (h *AuditHandler) IntakeStats(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	outcomes, err := h.reader.CountByOutcome(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	recent, err := h.reader.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcomes": outcomes,
		"recent":   recent,
		"count":    len(recent),
	})
}
