package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the clinical urgency tier assigned to a patient.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Score thresholds that map a priority score onto a risk tier. These drive
// clinical ordering and must match the upstream scorer's classification.
const (
	HighRiskScoreThreshold   = 20.0
	MediumRiskScoreThreshold = 10.0
)

// DefaultAge is substituted when the submitted age is missing or invalid.
const DefaultAge = 30

// RiskLevelFromScore classifies a priority score into a risk tier.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= HighRiskScoreThreshold:
		return RiskLevelHigh
	case score >= MediumRiskScoreThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ResolveRiskLevel resolves a patient's risk tier from an explicit upstream
// label when one is present, falling back to the score thresholds otherwise.
// Labels are matched case-insensitively by substring, so "High Risk" and
// "high" both resolve to High. Every read path must use this single rule so
// a viewer's summary and the queue table never disagree.
func ResolveRiskLevel(label string, score float64) RiskLevel {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch {
	case normalized == "":
		return RiskLevelFromScore(score)
	case strings.Contains(normalized, "high"):
		return RiskLevelHigh
	case strings.Contains(normalized, "medium"):
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ScoreResult is the outcome of one scoring call against the upstream
// risk-assessment service.
type ScoreResult struct {
	PriorityScore float64 `json:"priority_score"`
	RiskLevel     string  `json:"risk_level"`
}

// Tier resolves the result into a risk tier.
func (r ScoreResult) Tier() RiskLevel {
	return ResolveRiskLevel(r.RiskLevel, r.PriorityScore)
}

// Patient is the assembled intake record returned to the kiosk. Identity and
// score are fixed at registration; QueuePosition and EstimatedWaitTime are
// recomputed from the live queue register on every read.
type Patient struct {
	ID                string    `json:"patient_id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	Vitals            Vitals    `json:"vital_signs"`
	PriorityScore     float64   `json:"priority_score"`
	RiskLevel         RiskLevel `json:"risk_level"`
	QueuePosition     int       `json:"queue_position"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	CreatedAt         time.Time `json:"timestamp"`
}

// NewPatientID generates a queue-register identity for a new patient. The
// millisecond prefix keeps IDs roughly monotonic by arrival; the random
// suffix keeps two same-millisecond check-ins distinct.
func NewPatientID(now time.Time) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("patient_%d_%s", now.UnixMilli(), suffix)
}

// NormalizeAge replaces an invalid age with the default.
func NormalizeAge(age int) int {
	if age <= 0 {
		return DefaultAge
	}
	return age
}

// NormalizeGender replaces a missing gender with "Unknown".
func NormalizeGender(gender string) string {
	if strings.TrimSpace(gender) == "" {
		return "Unknown"
	}
	return gender
}
