package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	db := sqlx.NewDb(mockDB, "postgres")
	return db, mock
}

func TestIntakeAuditAdapter_LogEvent(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	adapter := NewIntakeAuditAdapter(db)

	mock.ExpectExec(`INSERT INTO "intake_audit"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &entities.IntakeEvent{
		SessionID:     "s-1",
		PatientID:     "patient_1",
		Outcome:       entities.IntakeOutcomeRegistered,
		PriorityScore: 5,
		RiskLevel:     "Low",
		QueuePosition: 3,
		LatencyMs:     420,
	}

	err := adapter.LogEvent(context.Background(), event)

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntakeAuditAdapter_LogEvent_NilEvent(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	adapter := NewIntakeAuditAdapter(db)

	err := adapter.LogEvent(context.Background(), nil)
	require.Error(t, err)
}

func TestIntakeAuditAdapter_ListRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	adapter := NewIntakeAuditAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "session_id", "patient_id", "outcome", "priority_score", "risk_level", "queue_position", "latency_ms", "created_at",
	}).
		AddRow("e2", "s-2", "patient_2", entities.IntakeOutcomeRegistered, 22.0, "High", 1, 310, now).
		AddRow("e1", "s-1", "", entities.IntakeOutcomeScoringUnavailable, 0.0, "", 0, 95, now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT .+ FROM "intake_audit" ORDER BY "created_at" DESC`).
		WillReturnRows(rows)

	events, err := adapter.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].ID)
	assert.Equal(t, entities.IntakeOutcomeScoringUnavailable, events[1].Outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntakeAuditAdapter_CountByOutcome(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	adapter := NewIntakeAuditAdapter(db)

	rows := sqlmock.NewRows([]string{"outcome", "count"}).
		AddRow(entities.IntakeOutcomeRegistered, 42).
		AddRow(entities.IntakeOutcomeScoringUnavailable, 3)

	mock.ExpectQuery(`SELECT "outcome", COUNT\(\*\) AS "count" FROM "intake_audit" GROUP BY "outcome"`).
		WillReturnRows(rows)

	counts, err := adapter.CountByOutcome(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, counts[entities.IntakeOutcomeRegistered])
	assert.Equal(t, 3, counts[entities.IntakeOutcomeScoringUnavailable])
	assert.NoError(t, mock.ExpectationsWereMet())
}
