package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// QueueEventType represents the type of queue update event
type QueueEventType string

const (
	QueueEventTypePatientRegistered QueueEventType = "patient_registered"
	QueueEventTypeQueueRefreshed    QueueEventType = "queue_refreshed"
)

// QueueEvent represents a real-time update to the shared queue, published
// when the pipeline registers a patient so connected kiosks can refresh
// their projected positions without polling.
type QueueEvent struct {
	ID            string         `json:"id"`
	EventType     QueueEventType `json:"event_type"`
	PatientID     string         `json:"patient_id,omitempty"`
	QueuePosition int            `json:"queue_position,omitempty"`
	QueueLength   int            `json:"queue_length,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewQueueEvent creates a new queue event
func NewQueueEvent(eventType QueueEventType, patientID string, position, length int) *QueueEvent {
	return &QueueEvent{
		ID:            generateEventID(),
		EventType:     eventType,
		PatientID:     patientID,
		QueuePosition: position,
		QueueLength:   length,
		Timestamp:     time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
