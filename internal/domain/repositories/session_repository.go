package repositories

import (
	"context"
	"errors"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// ErrSubmissionInProgress is returned by BeginSubmission when another
// submission for the same session is already in flight.
var ErrSubmissionInProgress = errors.New("submission already in progress for this session")

// SessionRepository tracks the per-client submission marker that makes
// intake idempotent. It is a duplicate-submission guard scoped to one kiosk
// session, not a source of truth for patient existence; that stays with the
// queue register.
type SessionRepository interface {
	// Get returns the session marker, or a zero marker when the session has
	// never submitted.
	Get(ctx context.Context, sessionID string) (*entities.SessionMarker, error)

	// Save stores the marker. Used both to mark a session submitted and to
	// stash a pending score after a failed registration.
	Save(ctx context.Context, sessionID string, marker *entities.SessionMarker) error

	// Clear removes the marker, restarting intake for the session.
	Clear(ctx context.Context, sessionID string) error

	// BeginSubmission takes the session's in-flight lock. It fails with
	// ErrSubmissionInProgress when a concurrent submission holds it.
	BeginSubmission(ctx context.Context, sessionID string) error

	// EndSubmission releases the in-flight lock.
	EndSubmission(ctx context.Context, sessionID string) error
}
