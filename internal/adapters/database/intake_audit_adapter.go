package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/repositories"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

const intakeAuditTable = "intake_audit"

// IntakeAuditAdapter persists intake attempts in Postgres. Audit rows are
// observability data; losing one never fails an intake.
type IntakeAuditAdapter struct {
	db      *sqlx.DB
	builder *goqu.Database
}

// NewIntakeAuditAdapter creates a new intake audit adapter.
func NewIntakeAuditAdapter(db *sqlx.DB) repositories.IntakeAuditRepository {
	return &IntakeAuditAdapter{
		db:      db,
		builder: goqu.New("postgres", db.DB),
	}
}

// LogEvent records one intake attempt.
func (a *IntakeAuditAdapter) LogEvent(ctx context.Context, event *entities.IntakeEvent) error {
	if event == nil {
		return apperrors.NewInternalError("intake event is nil", nil)
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":             event.ID,
		"session_id":     event.SessionID,
		"patient_id":     event.PatientID,
		"outcome":        event.Outcome,
		"priority_score": event.PriorityScore,
		"risk_level":     event.RiskLevel,
		"queue_position": event.QueuePosition,
		"latency_ms":     event.LatencyMs,
		"created_at":     event.CreatedAt,
	}

	query, args, err := a.builder.Insert(intakeAuditTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build intake audit insert", err)
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log intake event", err)
	}

	return nil
}

// ListRecent returns the most recent intake events, newest first.
func (a *IntakeAuditAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.IntakeEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := a.builder.From(intakeAuditTable).
		Select("id", "session_id", "patient_id", "outcome", "priority_score", "risk_level", "queue_position", "latency_ms", "created_at").
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build intake audit query", err)
	}

	var events []*entities.IntakeEvent
	if err := a.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list intake events", err)
	}

	return events, nil
}

// CountByOutcome returns intake counts grouped by outcome.
func (a *IntakeAuditAdapter) CountByOutcome(ctx context.Context) (map[string]int, error) {
	query, args, err := a.builder.From(intakeAuditTable).
		Select(goqu.C("outcome"), goqu.COUNT("*").As("count")).
		GroupBy(goqu.C("outcome")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build intake outcome query", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count intake outcomes", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan intake outcome", err)
		}
		counts[outcome] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read intake outcomes", err)
	}

	return counts, nil
}
