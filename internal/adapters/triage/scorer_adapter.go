package triage

import (
	"context"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/queueassigner"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

// ScorerAdapter implements ScorerProvider against the queue-assigner's
// /predict endpoint.
type ScorerAdapter struct {
	client queueassigner.Client
}

// NewScorerAdapter creates a new scorer adapter.
func NewScorerAdapter(client queueassigner.Client) providers.ScorerProvider {
	return &ScorerAdapter{client: client}
}

// Score submits normalized vitals for scoring. Any upstream failure becomes
// a ScoringUnavailable error; the pipeline never invents a score in its
// place because priority ordering has real-world consequences.
func (a *ScorerAdapter) Score(ctx context.Context, vitals entities.Vitals) (*entities.ScoreResult, error) {
	resp, err := a.client.Predict(ctx, toWireVitals(vitals))
	if err != nil {
		return nil, apperrors.NewScoringUnavailableError("risk scoring service is unavailable", err)
	}

	return &entities.ScoreResult{
		PriorityScore: resp.PriorityScore,
		RiskLevel:     resp.RiskLevel,
	}, nil
}

// toWireVitals maps domain vitals onto the upstream wire format, which
// spells out the blood pressure field names in full.
func toWireVitals(v entities.Vitals) queueassigner.VitalSignsPayload {
	return queueassigner.VitalSignsPayload{
		HeartRate:              v.HeartRate,
		BloodPressureSystolic:  v.BPSystolic,
		BloodPressureDiastolic: v.BPDiastolic,
		Temperature:            v.Temperature,
		OxygenSaturation:       v.OxygenSaturation,
		RespiratoryRate:        v.RespiratoryRate,
	}
}
