package entities

import "time"

// IntakeRequest is the client-submitted check-in payload. VitalSigns stays a
// pointer so a request that omitted vitals entirely can be told apart from
// one that submitted all-zero readings.
type IntakeRequest struct {
	FullName         string  `json:"name"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	Weight           float64 `json:"weight,omitempty"`
	Height           float64 `json:"height,omitempty"`
	ContactNumber    string  `json:"contact_number,omitempty"`
	EmergencyContact string  `json:"emergency_contact,omitempty"`
	VitalSigns       *Vitals `json:"vital_signs"`
}

// QueuedPatient is one entry of the external queue register's snapshot.
// Field values are owned by the register; this pipeline only reads them.
type QueuedPatient struct {
	ID                string    `json:"patient_id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	PriorityScore     float64   `json:"priority_score"`
	RiskLevel         string    `json:"risk_level"`
	QueuePosition     int       `json:"queue_position"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	Timestamp         time.Time `json:"timestamp"`
}

// Placement is the register's answer to an append: where the patient landed
// and how long they are expected to wait.
type Placement struct {
	QueuePosition     int       `json:"queue_position"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	Timestamp         time.Time `json:"timestamp"`
}

// QueueRow is one display-ready row of a projected queue view. RiskLevel is
// the resolved tier, not the raw upstream label.
type QueueRow struct {
	ID                string    `json:"patient_id"`
	Name              string    `json:"name"`
	PriorityScore     float64   `json:"priority_score"`
	RiskLevel         RiskLevel `json:"risk_level"`
	QueuePosition     int       `json:"queue_position"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
	Timestamp         time.Time `json:"timestamp"`
	IsViewer          bool      `json:"is_viewer,omitempty"`
}

// QueueView is the projection of one register snapshot for one viewer.
// When the viewer's patient is no longer present in the snapshot the view
// still carries usable placeholder fields rather than failing; a patient who
// has physically checked in must never see a dead end.
type QueueView struct {
	Rows              []QueueRow `json:"queue"`
	PatientFound      bool       `json:"patient_found"`
	QueuePosition     int        `json:"queue_position"`
	EstimatedWaitTime int        `json:"estimated_wait_time"`
	RiskLevel         RiskLevel  `json:"risk_level,omitempty"`
	PriorityScore     float64    `json:"priority_score,omitempty"`
}
