package repositories

import (
	"context"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// IntakeAuditRepository persists intake attempts for audit and analytics.
type IntakeAuditRepository interface {
	// LogEvent records one intake attempt.
	LogEvent(ctx context.Context, event *entities.IntakeEvent) error

	// ListRecent returns the most recent intake events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entities.IntakeEvent, error)

	// CountByOutcome returns intake counts grouped by outcome.
	CountByOutcome(ctx context.Context) (map[string]int, error)
}
