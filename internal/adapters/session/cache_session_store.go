package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/domain/repositories"
)

const (
	markerKeyPrefix   = "session:marker:"
	inflightKeyPrefix = "session:inflight:"
)

// CacheSessionStore implements SessionRepository on top of a CacheProvider
// (Redis in production). Markers expire with the session TTL so an abandoned
// kiosk session eventually resets on its own; the in-flight lock carries a
// short TTL so a crashed submission cannot wedge a session forever.
type CacheSessionStore struct {
	cache       providers.CacheProvider
	ttl         time.Duration
	inflightTTL time.Duration
}

// NewCacheSessionStore creates a cache-backed session store.
func NewCacheSessionStore(cache providers.CacheProvider, ttl, inflightTTL time.Duration) repositories.SessionRepository {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if inflightTTL <= 0 {
		inflightTTL = 30 * time.Second
	}
	return &CacheSessionStore{
		cache:       cache,
		ttl:         ttl,
		inflightTTL: inflightTTL,
	}
}

// Get returns the session marker, or a zero marker for an unknown session.
// Only a cache miss counts as unknown; a backend failure propagates, because
// mistaking a submitted session for a fresh one would re-register the
// patient.
func (s *CacheSessionStore) Get(ctx context.Context, sessionID string) (*entities.SessionMarker, error) {
	data, err := s.cache.Get(ctx, markerKeyPrefix+sessionID)
	if errors.Is(err, providers.ErrCacheMiss) {
		// Unknown session is not an error; intake simply has not happened.
		return &entities.SessionMarker{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session marker: %w", err)
	}

	var marker entities.SessionMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("failed to decode session marker: %w", err)
	}
	return &marker, nil
}

// Save stores the marker with the session TTL.
func (s *CacheSessionStore) Save(ctx context.Context, sessionID string, marker *entities.SessionMarker) error {
	marker.UpdatedAt = time.Now()
	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to encode session marker: %w", err)
	}
	return s.cache.Set(ctx, markerKeyPrefix+sessionID, data, s.ttl)
}

// Clear removes the marker, restarting intake for the session.
func (s *CacheSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, markerKeyPrefix+sessionID)
}

// BeginSubmission takes the in-flight lock for the session.
func (s *CacheSessionStore) BeginSubmission(ctx context.Context, sessionID string) error {
	ok, err := s.cache.SetIfAbsent(ctx, inflightKeyPrefix+sessionID, []byte("1"), s.inflightTTL)
	if err != nil {
		return fmt.Errorf("failed to take submission lock: %w", err)
	}
	if !ok {
		return repositories.ErrSubmissionInProgress
	}
	return nil
}

// EndSubmission releases the in-flight lock.
func (s *CacheSessionStore) EndSubmission(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, inflightKeyPrefix+sessionID)
}
