package entities

import "time"

// SessionMarker is the per-client submission record that makes intake
// idempotent. While Submitted is true the pipeline only re-reads queue state
// for PatientID and never re-registers. PendingScore survives a failed
// registration so a retry reuses the already-computed score instead of
// re-scoring, which could drift the patient's priority between attempts.
type SessionMarker struct {
	Submitted    bool         `json:"submitted"`
	PatientID    string       `json:"patient_id,omitempty"`
	PendingScore *ScoreResult `json:"pending_score,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
