package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/repo"
)

// End-to-end lifecycle scenarios against the in-memory store: the full
// create → conflict → isolation → delete flow with no mocks involved.

func TestLifecycle_OverlapScopedPerOwner(t *testing.T) {
	svc := newService(repo.NewMemTripRepo(), nil)
	ctx := context.Background()
	ownerU := testOwner()
	ownerV := testOwner()

	paris := domain.Trip{
		Destination: "Paris",
		StartDate:   datePtr(2024, 7, 1),
		EndDate:     datePtr(2024, 7, 5),
	}
	_, err := svc.Create(ctx, paris, ownerU)
	require.NoError(t, err)

	overlapping := domain.Trip{
		Destination: "Rome",
		StartDate:   datePtr(2024, 7, 4),
		EndDate:     datePtr(2024, 7, 10),
	}

	// Same owner: rejected.
	_, err = svc.Create(ctx, overlapping, ownerU)
	assert.ErrorIs(t, err, domain.ErrDateConflict)

	// Different owner: the same dates are fine.
	_, err = svc.Create(ctx, overlapping, ownerV)
	assert.NoError(t, err)
}

func TestLifecycle_TouchingBoundaryConflicts(t *testing.T) {
	svc := newService(repo.NewMemTripRepo(), nil)
	ctx := context.Background()
	owner := testOwner()

	first := domain.Trip{
		Destination: "Paris",
		StartDate:   datePtr(2024, 7, 1),
		EndDate:     datePtr(2024, 7, 5),
	}
	_, err := svc.Create(ctx, first, owner)
	require.NoError(t, err)

	touching := domain.Trip{
		Destination: "Rome",
		StartDate:   datePtr(2024, 7, 5),
		EndDate:     datePtr(2024, 7, 9),
	}
	_, err = svc.Create(ctx, touching, owner)
	assert.ErrorIs(t, err, domain.ErrDateConflict)

	adjacent := domain.Trip{
		Destination: "Rome",
		StartDate:   datePtr(2024, 7, 6),
		EndDate:     datePtr(2024, 7, 9),
	}
	_, err = svc.Create(ctx, adjacent, owner)
	assert.NoError(t, err)
}

func TestLifecycle_OwnershipIsolation(t *testing.T) {
	svc := newService(repo.NewMemTripRepo(), nil)
	ctx := context.Background()
	ownerU := testOwner()
	ownerV := testOwner()

	created, err := svc.Create(ctx, validTrip(), ownerU)
	require.NoError(t, err)

	// V cannot read U's trip.
	_, err = svc.GetByIDForOwner(ctx, created.ID, ownerV)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// V cannot list U's trip.
	trips, err := svc.ListForOwner(ctx, ownerV)
	require.NoError(t, err)
	assert.Empty(t, trips)

	// V's delete attempt is a silent no-op; U's trip survives.
	require.NoError(t, svc.DeleteForOwner(ctx, created.ID, ownerV))
	_, err = svc.GetByIDForOwner(ctx, created.ID, ownerU)
	assert.NoError(t, err)
}

func TestLifecycle_DeleteIsIdempotent(t *testing.T) {
	svc := newService(repo.NewMemTripRepo(), nil)
	ctx := context.Background()
	owner := testOwner()

	created, err := svc.Create(ctx, validTrip(), owner)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteForOwner(ctx, created.ID, owner))
	// Second delete of the same trip is a no-op, not an error.
	require.NoError(t, svc.DeleteForOwner(ctx, created.ID, owner))

	trips, err := svc.ListForOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestLifecycle_StoredTripsNeverOverlap(t *testing.T) {
	svc := newService(repo.NewMemTripRepo(), nil)
	ctx := context.Background()
	owner := testOwner()

	candidates := []domain.Trip{
		{Destination: "A", StartDate: datePtr(2024, 7, 1), EndDate: datePtr(2024, 7, 5)},
		{Destination: "B", StartDate: datePtr(2024, 7, 3), EndDate: datePtr(2024, 7, 8)},
		{Destination: "C", StartDate: datePtr(2024, 7, 6), EndDate: datePtr(2024, 7, 10)},
		{Destination: "D", StartDate: datePtr(2024, 7, 10), EndDate: datePtr(2024, 7, 12)},
		{Destination: "E", StartDate: datePtr(2024, 8, 1), EndDate: datePtr(2024, 8, 2)},
	}
	for _, c := range candidates {
		_, _ = svc.Create(ctx, c, owner) // conflicts are expected for some
	}

	stored, err := svc.ListForOwner(ctx, owner)
	require.NoError(t, err)

	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t,
				domain.RangesOverlap(*stored[i].StartDate, *stored[i].EndDate, *stored[j].StartDate, *stored[j].EndDate),
				"stored trips %s and %s overlap", stored[i].Destination, stored[j].Destination)
		}
	}
}
