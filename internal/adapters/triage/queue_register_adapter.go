package triage

import (
	"context"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/queueassigner"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

// QueueRegisterAdapter implements QueueRegister against the queue-assigner's
// /queue/ endpoints. Snapshot order is preserved exactly as the register
// returned it; ordering authority belongs to the external service.
type QueueRegisterAdapter struct {
	client queueassigner.Client
}

// NewQueueRegisterAdapter creates a new queue register adapter.
func NewQueueRegisterAdapter(client queueassigner.Client) providers.QueueRegister {
	return &QueueRegisterAdapter{client: client}
}

// Append registers a patient and returns their placement.
func (a *QueueRegisterAdapter) Append(ctx context.Context, entry providers.QueueEntry) (*entities.Placement, error) {
	resp, err := a.client.Enqueue(ctx, queueassigner.EnqueuePayload{
		PatientID:     entry.PatientID,
		Name:          entry.Name,
		Age:           entry.Age,
		Gender:        entry.Gender,
		PriorityScore: entry.PriorityScore,
		VitalSigns:    toWireVitals(entry.Vitals),
		Timestamp:     entry.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, apperrors.NewRegistrationUnavailableError("queue registration service is unavailable", err)
	}

	placement := &entities.Placement{
		QueuePosition:     resp.QueuePosition,
		EstimatedWaitTime: resp.EstimatedWaitTime,
		Timestamp:         parseTimestamp(resp.Timestamp, entry.Timestamp),
	}
	return placement, nil
}

// List returns the current ordered queue snapshot. A read failure is an
// external-service error, not a registration failure; that kind is reserved
// for a failed append.
func (a *QueueRegisterAdapter) List(ctx context.Context) ([]entities.QueuedPatient, error) {
	resp, err := a.client.GetQueue(ctx)
	if err != nil {
		return nil, apperrors.NewExternalError("queue register is unavailable", err)
	}

	snapshot := make([]entities.QueuedPatient, 0, len(resp.Queue))
	for _, record := range resp.Queue {
		snapshot = append(snapshot, entities.QueuedPatient{
			ID:                record.PatientID,
			Name:              record.Name,
			Age:               record.Age,
			Gender:            record.Gender,
			PriorityScore:     record.PriorityScore,
			RiskLevel:         record.RiskLevel,
			QueuePosition:     record.QueuePosition,
			EstimatedWaitTime: record.EstimatedWaitTime,
			Timestamp:         parseTimestamp(record.Timestamp, time.Time{}),
		})
	}
	return snapshot, nil
}

// parseTimestamp decodes an upstream RFC3339 timestamp, falling back rather
// than failing a whole snapshot over one malformed field.
func parseTimestamp(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback
	}
	return parsed
}
