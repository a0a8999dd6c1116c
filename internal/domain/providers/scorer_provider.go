package providers

import (
	"context"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// ScorerProvider defines the interface to the external risk-assessment
// capability. Input must be normalized vitals; the scoring model itself is
// opaque to this pipeline.
type ScorerProvider interface {
	// Score submits vitals and returns the upstream priority score and risk
	// label. Any transport or response failure is returned as an error; the
	// pipeline never synthesizes a score.
	Score(ctx context.Context, vitals entities.Vitals) (*entities.ScoreResult, error)
}
