package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/repositories"
)

func TestMemorySessionStore_UnknownSessionIsZeroMarker(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)

	marker, err := store.Get(context.Background(), "s-1")
	require.NoError(t, err)
	assert.False(t, marker.Submitted)
	assert.Empty(t, marker.PatientID)
}

func TestMemorySessionStore_SaveAndClear(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	ctx := context.Background()

	err := store.Save(ctx, "s-1", &entities.SessionMarker{
		Submitted: true,
		PatientID: "patient_1",
	})
	require.NoError(t, err)

	marker, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, marker.Submitted)
	assert.Equal(t, "patient_1", marker.PatientID)
	assert.False(t, marker.UpdatedAt.IsZero())

	require.NoError(t, store.Clear(ctx, "s-1"))

	marker, err = store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, marker.Submitted)
}

func TestMemorySessionStore_InFlightLock(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.BeginSubmission(ctx, "s-1"))

	err := store.BeginSubmission(ctx, "s-1")
	assert.ErrorIs(t, err, repositories.ErrSubmissionInProgress)

	// A different session is unaffected.
	require.NoError(t, store.BeginSubmission(ctx, "s-2"))

	require.NoError(t, store.EndSubmission(ctx, "s-1"))
	require.NoError(t, store.BeginSubmission(ctx, "s-1"))
}

func TestMemorySessionStore_StaleLockIsReclaimed(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.BeginSubmission(ctx, "s-1"))
	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, store.BeginSubmission(ctx, "s-1"))
}
