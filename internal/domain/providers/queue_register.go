package providers

import (
	"context"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// QueueEntry is the record appended to the external queue register.
// PatientID doubles as the idempotency key: it is generated by the pipeline
// before the first append attempt and reused on retries, so the register can
// never hold two entries for one check-in.
type QueueEntry struct {
	PatientID     string
	Name          string
	Age           int
	Gender        string
	PriorityScore float64
	Vitals        entities.Vitals
	Timestamp     time.Time
}

// QueueRegister defines the interface to the external shared ordered queue.
// The register owns queue order, positions and wait estimates; this pipeline
// only appends and reads. It never re-sorts a snapshot locally.
type QueueRegister interface {
	// Append registers a patient and returns their placement.
	Append(ctx context.Context, entry QueueEntry) (*entities.Placement, error)

	// List returns the current ordered queue snapshot.
	List(ctx context.Context) ([]entities.QueuedPatient, error)
}
