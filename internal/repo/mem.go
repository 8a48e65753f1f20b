package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
)

// memTripRepo is an in-memory TripRepo used by unit tests and local tooling.
// It mirrors the Postgres implementation's observable behavior: full-aggregate
// reads, atomic saves (the mutex covers the whole operation), cascade deletes,
// and the start_date ASC NULLS LAST listing order.
type memTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]domain.Trip
	now   func() time.Time
}

// NewMemTripRepo constructs an empty in-memory TripRepo.
func NewMemTripRepo() TripRepo {
	return &memTripRepo{
		trips: map[uuid.UUID]domain.Trip{},
		now:   time.Now,
	}
}

func (r *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip.ID = uuid.New()
	trip.CreatedAt = r.now().UTC()
	trip.UpdatedAt = trip.CreatedAt
	trip.NormalizeChildren()
	r.trips[trip.ID] = cloneTrip(trip)
	return cloneTrip(trip), nil
}

func (r *memTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return cloneTrip(trip), nil
}

func (r *memTripRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := []domain.Trip{}
	for _, trip := range r.trips {
		if trip.OwnerID == ownerID {
			trips = append(trips, cloneTrip(trip))
		}
	}
	sort.SliceStable(trips, func(i, j int) bool {
		a, b := trips[i], trips[j]
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.StartDate == nil:
			return false
		case b.StartDate == nil:
			return true
		case a.StartDate.Equal(*b.StartDate):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.StartDate.Before(*b.StartDate)
		}
	})
	return trips, nil
}

func (r *memTripRepo) Save(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.trips[trip.ID]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	trip.OwnerID = stored.OwnerID
	trip.OwnerEmail = stored.OwnerEmail
	trip.CreatedAt = stored.CreatedAt
	trip.UpdatedAt = r.now().UTC()
	trip.NormalizeChildren()
	r.trips[trip.ID] = cloneTrip(trip)
	return cloneTrip(trip), nil
}

func (r *memTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *memTripRepo) ListMissingCoordinates(_ context.Context) ([]domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := []domain.Trip{}
	for _, trip := range r.trips {
		if !trip.HasCoordinates() {
			trips = append(trips, cloneTrip(trip))
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *memTripRepo) UpdateCoordinates(_ context.Context, id uuid.UUID, lat, lon float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return domain.ErrNotFound
	}
	trip.Latitude = &lat
	trip.Longitude = &lon
	trip.UpdatedAt = r.now().UTC()
	r.trips[id] = trip
	return nil
}

// cloneTrip deep-copies a trip so callers can never mutate stored state
// through a returned aggregate.
func cloneTrip(t domain.Trip) domain.Trip {
	out := t
	out.StartDate = clonePtr(t.StartDate)
	out.EndDate = clonePtr(t.EndDate)
	out.Latitude = clonePtr(t.Latitude)
	out.Longitude = clonePtr(t.Longitude)
	out.Itinerary = append([]domain.ItineraryItem{}, t.Itinerary...)
	out.Packing = append([]domain.PackingItem{}, t.Packing...)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
