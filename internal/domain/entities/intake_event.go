package entities

import (
	"time"
)

// Intake outcomes recorded for audit. Failure outcomes mirror the error
// taxonomy surfaced to the presentation layer.
const (
	IntakeOutcomeRegistered              = "registered"
	IntakeOutcomeMissingVitals           = "missing_vitals"
	IntakeOutcomeScoringUnavailable      = "scoring_unavailable"
	IntakeOutcomeRegistrationUnavailable = "registration_unavailable"
)

// IntakeEvent represents a single intake attempt for audit and analytics.
// It is observability data only; authoritative queue state stays with the
// external register.
type IntakeEvent struct {
	ID            string    `json:"id" db:"id"`
	SessionID     string    `json:"session_id" db:"session_id"`
	PatientID     string    `json:"patient_id,omitempty" db:"patient_id"`
	Outcome       string    `json:"outcome" db:"outcome"`
	PriorityScore float64   `json:"priority_score" db:"priority_score"`
	RiskLevel     string    `json:"risk_level" db:"risk_level"`
	QueuePosition int       `json:"queue_position" db:"queue_position"`
	LatencyMs     int       `json:"latency_ms" db:"latency_ms"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
