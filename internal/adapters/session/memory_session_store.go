package session

import (
	"context"
	"sync"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/repositories"
)

// MemorySessionStore implements SessionRepository in process memory. It is
// the fallback when Redis is unavailable: the service keeps working, at the
// cost of session markers not surviving a restart or being shared across
// instances.
type MemorySessionStore struct {
	mu       sync.Mutex
	markers  map[string]entities.SessionMarker
	inflight map[string]time.Time
	ttl      time.Duration
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore(inflightTTL time.Duration) repositories.SessionRepository {
	if inflightTTL <= 0 {
		inflightTTL = 30 * time.Second
	}
	return &MemorySessionStore{
		markers:  make(map[string]entities.SessionMarker),
		inflight: make(map[string]time.Time),
		ttl:      inflightTTL,
	}
}

// Get returns the session marker, or a zero marker for an unknown session.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*entities.SessionMarker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, ok := s.markers[sessionID]
	if !ok {
		return &entities.SessionMarker{}, nil
	}
	copied := marker
	return &copied, nil
}

// Save stores the marker.
func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, marker *entities.SessionMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker.UpdatedAt = time.Now()
	s.markers[sessionID] = *marker
	return nil
}

// Clear removes the marker.
func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.markers, sessionID)
	return nil
}

// BeginSubmission takes the in-flight lock for the session. Stale locks past
// their TTL are reclaimed, mirroring the Redis expiry behavior.
func (s *MemorySessionStore) BeginSubmission(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if started, ok := s.inflight[sessionID]; ok && time.Since(started) < s.ttl {
		return repositories.ErrSubmissionInProgress
	}
	s.inflight[sessionID] = time.Now()
	return nil
}

// EndSubmission releases the in-flight lock.
func (s *MemorySessionStore) EndSubmission(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inflight, sessionID)
	return nil
}
