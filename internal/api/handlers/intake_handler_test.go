package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JastejS28/intel3/internal/api/handlers"
	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/pkg/config"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

type stubIntakeService struct {
	checkInFunc      func(ctx context.Context, sessionID string, req *entities.IntakeRequest) (*entities.Patient, error)
	queueStatusFunc  func(ctx context.Context, sessionID string) (*entities.Patient, error)
	getPatientFunc   func(ctx context.Context, patientID string) (*entities.Patient, error)
	clearSessionFunc func(ctx context.Context, sessionID string) error

	lastSessionID string
}

func (s *stubIntakeService) CheckIn(ctx context.Context, sessionID string, req *entities.IntakeRequest) (*entities.Patient, error) {
	s.lastSessionID = sessionID
	if s.checkInFunc != nil {
		return s.checkInFunc(ctx, sessionID, req)
	}
	return &entities.Patient{ID: "patient_1"}, nil
}

func (s *stubIntakeService) QueueStatus(ctx context.Context, sessionID string) (*entities.Patient, error) {
	s.lastSessionID = sessionID
	if s.queueStatusFunc != nil {
		return s.queueStatusFunc(ctx, sessionID)
	}
	return &entities.Patient{ID: "patient_1"}, nil
}

func (s *stubIntakeService) GetPatient(ctx context.Context, patientID string) (*entities.Patient, error) {
	if s.getPatientFunc != nil {
		return s.getPatientFunc(ctx, patientID)
	}
	return &entities.Patient{ID: patientID}, nil
}

func (s *stubIntakeService) ClearSession(ctx context.Context, sessionID string) error {
	s.lastSessionID = sessionID
	if s.clearSessionFunc != nil {
		return s.clearSessionFunc(ctx, sessionID)
	}
	return nil
}

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		TTL:        12 * time.Hour,
		CookieName: "kiosk_session",
	}
}

func checkInBody() string {
	return `{
		"name": "Jane Doe",
		"age": 42,
		"gender": "Female",
		"vital_signs": {
			"heart_rate": 88,
			"bp_systolic": 130,
			"bp_diastolic": 85,
			"temperature": 37.2,
			"oxygen_saturation": 97,
			"respiratory_rate": 18
		}
	}`
}

func TestIntakeHandler_CheckIn(t *testing.T) {
	t.Run("returns created patient and sets session cookie", func(t *testing.T) {
		service := &stubIntakeService{
			checkInFunc: func(_ context.Context, _ string, req *entities.IntakeRequest) (*entities.Patient, error) {
				require.NotNil(t, req.VitalSigns)
				return &entities.Patient{
					ID:            "patient_1",
					Name:          req.FullName,
					PriorityScore: 23.5,
					RiskLevel:     entities.RiskLevelHigh,
					QueuePosition: 3,
				}, nil
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(checkInBody()))
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var patient entities.Patient
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patient))
		assert.Equal(t, "patient_1", patient.ID)
		assert.Equal(t, entities.RiskLevelHigh, patient.RiskLevel)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "kiosk_session", cookies[0].Name)
		assert.Equal(t, service.lastSessionID, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("reuses session from cookie", func(t *testing.T) {
		service := &stubIntakeService{}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(checkInBody()))
		req.AddCookie(&http.Cookie{Name: "kiosk_session", Value: "sess-abc"})
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, "sess-abc", service.lastSessionID)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("header session takes precedence over cookie", func(t *testing.T) {
		service := &stubIntakeService{}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(checkInBody()))
		req.Header.Set("X-Session-ID", "sess-header")
		req.AddCookie(&http.Cookie{Name: "kiosk_session", Value: "sess-cookie"})
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, "sess-header", service.lastSessionID)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		handler := handlers.NewIntakeHandler(&stubIntakeService{}, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing vitals maps to 400 with kind", func(t *testing.T) {
		service := &stubIntakeService{
			checkInFunc: func(context.Context, string, *entities.IntakeRequest) (*entities.Patient, error) {
				return nil, apperrors.NewMissingVitalsError("vital signs are required")
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"name":"Jane Doe"}`))
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "MISSING_VITALS", body["kind"])
	})

	t.Run("scoring outage maps to 502 with kind", func(t *testing.T) {
		service := &stubIntakeService{
			checkInFunc: func(context.Context, string, *entities.IntakeRequest) (*entities.Patient, error) {
				return nil, apperrors.NewScoringUnavailableError("scoring service unreachable", errors.New("timeout"))
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(checkInBody()))
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "SCORING_UNAVAILABLE", body["kind"])
	})

	t.Run("in-flight submission maps to 409", func(t *testing.T) {
		service := &stubIntakeService{
			checkInFunc: func(context.Context, string, *entities.IntakeRequest) (*entities.Patient, error) {
				return nil, apperrors.NewConflictError("a submission for this session is already in progress")
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(checkInBody()))
		rec := httptest.NewRecorder()
		handler.CheckIn(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestIntakeHandler_QueueStatus(t *testing.T) {
	t.Run("without a session there is nothing to report", func(t *testing.T) {
		service := &stubIntakeService{}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/queue/status", nil)
		rec := httptest.NewRecorder()
		handler.QueueStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, service.lastSessionID)
	})

	t.Run("returns the session's patient", func(t *testing.T) {
		service := &stubIntakeService{
			queueStatusFunc: func(_ context.Context, sessionID string) (*entities.Patient, error) {
				assert.Equal(t, "sess-abc", sessionID)
				return &entities.Patient{ID: "patient_1", QueuePosition: 2}, nil
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/queue/status", nil)
		req.AddCookie(&http.Cookie{Name: "kiosk_session", Value: "sess-abc"})
		rec := httptest.NewRecorder()
		handler.QueueStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var patient entities.Patient
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patient))
		assert.Equal(t, 2, patient.QueuePosition)
	})
}

func TestIntakeHandler_GetPatient(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		service := &stubIntakeService{
			getPatientFunc: func(context.Context, string) (*entities.Patient, error) {
				return nil, apperrors.NewNotFoundError("patient not found in queue")
			},
		}
		handler := handlers.NewIntakeHandler(service, sessionConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/patients/patient_x", nil)
		req.SetPathValue("id", "patient_x")
		rec := httptest.NewRecorder()
		handler.GetPatient(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestIntakeHandler_ClearSession(t *testing.T) {
	service := &stubIntakeService{}
	handler := handlers.NewIntakeHandler(service, sessionConfig())

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: "kiosk_session", Value: "sess-abc"})
	rec := httptest.NewRecorder()
	handler.ClearSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-abc", service.lastSessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
