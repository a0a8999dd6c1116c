package triage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/queueassigner"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

type stubClient struct {
	predictResp *queueassigner.PredictResponse
	predictErr  error
	enqueueResp *queueassigner.EnqueueResponse
	enqueueErr  error
	queueResp   *queueassigner.QueueResponse
	queueErr    error

	lastEnqueue queueassigner.EnqueuePayload
	lastVitals  queueassigner.VitalSignsPayload
}

func (s *stubClient) Predict(ctx context.Context, payload queueassigner.VitalSignsPayload) (*queueassigner.PredictResponse, error) {
	s.lastVitals = payload
	return s.predictResp, s.predictErr
}

func (s *stubClient) Enqueue(ctx context.Context, payload queueassigner.EnqueuePayload) (*queueassigner.EnqueueResponse, error) {
	s.lastEnqueue = payload
	return s.enqueueResp, s.enqueueErr
}

func (s *stubClient) GetQueue(ctx context.Context) (*queueassigner.QueueResponse, error) {
	return s.queueResp, s.queueErr
}

func TestScorerAdapter_MapsVitalsAndResult(t *testing.T) {
	client := &stubClient{
		predictResp: &queueassigner.PredictResponse{PriorityScore: 22, RiskLevel: "High Risk"},
	}
	adapter := NewScorerAdapter(client)

	result, err := adapter.Score(context.Background(), entities.Vitals{
		HeartRate:        110,
		BPSystolic:       150,
		BPDiastolic:      95,
		Temperature:      38.5,
		OxygenSaturation: 91,
		RespiratoryRate:  24,
	})

	require.NoError(t, err)
	assert.Equal(t, 22.0, result.PriorityScore)
	assert.Equal(t, "High Risk", result.RiskLevel)
	assert.Equal(t, 150.0, client.lastVitals.BloodPressureSystolic)
	assert.Equal(t, 95.0, client.lastVitals.BloodPressureDiastolic)
}

func TestScorerAdapter_FailureBecomesScoringUnavailable(t *testing.T) {
	client := &stubClient{predictErr: errors.New("connection refused")}
	adapter := NewScorerAdapter(client)

	_, err := adapter.Score(context.Background(), entities.Vitals{})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeScoringUnavailable, apperrors.TypeOf(err))
}

func TestQueueRegisterAdapter_AppendCarriesIdentity(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	client := &stubClient{
		enqueueResp: &queueassigner.EnqueueResponse{
			QueuePosition:     3,
			EstimatedWaitTime: 15,
			Timestamp:         now.Format(time.RFC3339),
		},
	}
	adapter := NewQueueRegisterAdapter(client)

	placement, err := adapter.Append(context.Background(), providers.QueueEntry{
		PatientID:     "patient_42_beef",
		Name:          "Jane Doe",
		Age:           34,
		Gender:        "Female",
		PriorityScore: 5,
		Timestamp:     now,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, placement.QueuePosition)
	assert.Equal(t, 15, placement.EstimatedWaitTime)
	assert.Equal(t, now, placement.Timestamp)
	assert.Equal(t, "patient_42_beef", client.lastEnqueue.PatientID)
}

func TestQueueRegisterAdapter_AppendFailureBecomesRegistrationUnavailable(t *testing.T) {
	client := &stubClient{enqueueErr: errors.New("status 503")}
	adapter := NewQueueRegisterAdapter(client)

	_, err := adapter.Append(context.Background(), providers.QueueEntry{PatientID: "patient_1"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeRegistrationUnavailable, apperrors.TypeOf(err))
}

func TestQueueRegisterAdapter_ListFailureIsExternal(t *testing.T) {
	client := &stubClient{queueErr: errors.New("status 503")}
	adapter := NewQueueRegisterAdapter(client)

	_, err := adapter.List(context.Background())

	require.Error(t, err)
	// A snapshot read failure is not a registration failure; that kind is
	// reserved for a failed append.
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
}

func TestQueueRegisterAdapter_ListPreservesOrder(t *testing.T) {
	client := &stubClient{
		queueResp: &queueassigner.QueueResponse{Queue: []queueassigner.QueueEntryRecord{
			{PatientID: "patient_b", PriorityScore: 25, QueuePosition: 1},
			{PatientID: "patient_a", PriorityScore: 4, QueuePosition: 2},
			{PatientID: "patient_c", PriorityScore: 4, QueuePosition: 3},
		}},
	}
	adapter := NewQueueRegisterAdapter(client)

	snapshot, err := adapter.List(context.Background())

	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "patient_b", snapshot[0].ID)
	assert.Equal(t, "patient_a", snapshot[1].ID)
	assert.Equal(t, "patient_c", snapshot[2].ID)
}
