package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/pkg/config"
)

// sessionIDHeader lets non-browser clients carry the session without cookies.
const sessionIDHeader = "X-Session-ID"

// IntakeService defines the intake operations used by the handler.
type IntakeService interface {
	CheckIn(ctx context.Context, sessionID string, req *entities.IntakeRequest) (*entities.Patient, error)
	QueueStatus(ctx context.Context, sessionID string) (*entities.Patient, error)
	GetPatient(ctx context.Context, patientID string) (*entities.Patient, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// IntakeHandler handles patient check-in and per-session queue status.
type IntakeHandler struct {
	service IntakeService
	session config.SessionConfig
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(service IntakeService, session config.SessionConfig) *IntakeHandler {
	return &IntakeHandler{service: service, session: session}
}

// CheckIn handles POST /api/patients
func (h *IntakeHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	sessionID, isNew := h.resolveSession(r)
	if isNew {
		h.setSessionCookie(w, sessionID)
	}

	var payload entities.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient, err := h.service.CheckIn(r.Context(), sessionID, &payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, patient)
}

// QueueStatus handles GET /api/queue/status
func (h *IntakeHandler) QueueStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, isNew := h.resolveSession(r)
	if isNew {
		respondWithError(w, http.StatusNotFound, "no submission recorded for this session")
		return
	}

	patient, err := h.service.QueueStatus(r.Context(), sessionID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// GetPatient handles GET /api/patients/{id}
func (h *IntakeHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	patient, err := h.service.GetPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// ClearSession handles DELETE /api/session
func (h *IntakeHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID, isNew := h.resolveSession(r)
	if !isNew {
		if err := h.service.ClearSession(r.Context(), sessionID); err != nil {
			respondWithAppError(w, err)
			return
		}
	}

	// Expire the cookie so the next check-in starts a fresh session.
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// resolveSession extracts the caller's session id from the header or cookie,
// minting a new one when neither is present.
func (h *IntakeHandler) resolveSession(r *http.Request) (string, bool) {
	if id := r.Header.Get(sessionIDHeader); id != "" {
		return id, false
	}
	if cookie, err := r.Cookie(h.session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, false
	}
	return uuid.New().String(), true
}

func (h *IntakeHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
