package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JastejS28/intel3/internal/api/handlers"
	"github.com/JastejS28/intel3/internal/domain/entities"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

type stubQueueViewService struct {
	viewFunc func(ctx context.Context, viewerID string) (*entities.QueueView, error)
}

func (s *stubQueueViewService) View(ctx context.Context, viewerID string) (*entities.QueueView, error) {
	return s.viewFunc(ctx, viewerID)
}

func TestQueueHandler_ListQueue(t *testing.T) {
	service := &stubQueueViewService{
		viewFunc: func(_ context.Context, viewerID string) (*entities.QueueView, error) {
			assert.Empty(t, viewerID)
			return &entities.QueueView{
				Rows: []entities.QueueRow{
					{ID: "p1", QueuePosition: 1, RiskLevel: entities.RiskLevelHigh},
					{ID: "p2", QueuePosition: 2, RiskLevel: entities.RiskLevelLow},
				},
			}, nil
		},
	}
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	handler.ListQueue(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Queue []entities.QueueRow `json:"queue"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "p1", body.Queue[0].ID)
}

func TestQueueHandler_ViewQueue(t *testing.T) {
	t.Run("passes the viewer id through", func(t *testing.T) {
		service := &stubQueueViewService{
			viewFunc: func(_ context.Context, viewerID string) (*entities.QueueView, error) {
				assert.Equal(t, "patient_1", viewerID)
				return &entities.QueueView{
					Rows:          []entities.QueueRow{{ID: "patient_1", IsViewer: true, QueuePosition: 1}},
					PatientFound:  true,
					QueuePosition: 1,
				}, nil
			},
		}
		handler := handlers.NewQueueHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/api/queue?patient_id=patient_1", nil)
		rec := httptest.NewRecorder()
		handler.ViewQueue(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var view entities.QueueView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.True(t, view.PatientFound)
	})

	t.Run("highlight is an alias for patient_id", func(t *testing.T) {
		service := &stubQueueViewService{
			viewFunc: func(_ context.Context, viewerID string) (*entities.QueueView, error) {
				assert.Equal(t, "patient_2", viewerID)
				return &entities.QueueView{}, nil
			},
		}
		handler := handlers.NewQueueHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/api/queue?highlight=patient_2", nil)
		rec := httptest.NewRecorder()
		handler.ViewQueue(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("register outage maps to 502", func(t *testing.T) {
		service := &stubQueueViewService{
			viewFunc: func(context.Context, string) (*entities.QueueView, error) {
				return nil, apperrors.NewExternalError("queue register unreachable", errors.New("503"))
			},
		}
		handler := handlers.NewQueueHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
		rec := httptest.NewRecorder()
		handler.ViewQueue(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
