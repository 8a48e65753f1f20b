// Package service contains the business logic for the HiVoyage API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// geocoding calls. No SQL lives here — services depend on the repo interface,
// not an implementation.
//
// Every operation is owner-scoped: the caller's identity is an explicit
// parameter, and a trip belonging to a different owner is indistinguishable
// from a missing one.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/geocode"
	"github.com/hivoyage/backend/internal/repo"
)

// TripService implements the trip lifecycle: create, list, fetch, delete,
// child-mutation persistence, and the coordinate maintenance sweep.
type TripService struct {
	repo repo.TripRepo
	geo  geocode.Client
	log  *slog.Logger
	now  func() time.Time
}

// NewTripService constructs a TripService. now may be nil, in which case the
// wall clock is used; tests inject a fixed clock to pin countdown and status
// derivation.
func NewTripService(r repo.TripRepo, geo geocode.Client, log *slog.Logger, now func() time.Time) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{repo: r, geo: geo, log: log, now: now}
}

// Create validates the trip, rejects date ranges overlapping the owner's
// existing trips, resolves destination coordinates best-effort, and persists.
//
// Geocoding failure never fails the create: the trip is stored without
// coordinates and repaired later by RefreshMissingCoordinates.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, owner domain.Owner) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	existing, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if domain.HasOverlappingDates(trip, existing) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: dates overlap an existing trip", domain.ErrDateConflict)
	}

	if coords := s.resolveCoordinates(ctx, trip.Destination); coords != nil {
		trip.Latitude = &coords.Latitude
		trip.Longitude = &coords.Longitude
	}

	trip.OwnerID = owner.ID
	trip.OwnerEmail = owner.Email
	trip.NormalizeChildren()

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.log.InfoContext(ctx, "trip created", "trip_id", created.ID, "owner", owner.Email, "destination", created.Destination)
	return created, nil
}

// ListForOwner returns all of the owner's trips, earliest start date first
// with unscheduled trips last, each annotated with its countdown label.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListForOwner(ctx context.Context, owner domain.Owner) ([]domain.Trip, error) {
	trips, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListForOwner: %w", err)
	}
	today := s.now()
	for i := range trips {
		trips[i].Countdown = trips[i].CountdownAt(today)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// GetByIDForOwner returns the trip if it exists and belongs to the owner,
// annotated with its derived status. A trip owned by someone else yields
// domain.ErrNotFound, identical to a trip that does not exist.
func (s *TripService) GetByIDForOwner(ctx context.Context, id uuid.UUID, owner domain.Owner) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByIDForOwner: %w", err)
	}
	if trip.OwnerID != owner.ID {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByIDForOwner: %w", domain.ErrNotFound)
	}
	trip.Status = trip.StatusAt(s.now())
	return trip, nil
}

// SaveChildMutation persists a trip whose child collections changed.
// The overlap check is skipped — the dates themselves did not change — but
// ownership is re-verified against the stored record before writing.
func (s *TripService) SaveChildMutation(ctx context.Context, trip domain.Trip, owner domain.Owner) (domain.Trip, error) {
	stored, err := s.repo.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SaveChildMutation: %w", err)
	}
	if stored.OwnerID != owner.ID {
		return domain.Trip{}, fmt.Errorf("service.TripService.SaveChildMutation: %w", domain.ErrNotFound)
	}

	trip.Status = ""
	trip.Countdown = ""
	saved, err := s.repo.Save(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SaveChildMutation: %w", err)
	}
	return saved, nil
}

// DeleteForOwner deletes the trip and its children if the owner holds it.
// Deletion is idempotent from the caller's perspective: a missing or
// foreign-owned trip is logged and ignored, never an error.
func (s *TripService) DeleteForOwner(ctx context.Context, id uuid.UUID, owner domain.Owner) error {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.InfoContext(ctx, "delete skipped: trip not found", "trip_id", id, "owner", owner.Email)
			return nil
		}
		return fmt.Errorf("service.TripService.DeleteForOwner: %w", err)
	}
	if trip.OwnerID != owner.ID {
		s.log.InfoContext(ctx, "delete skipped: trip not owned by caller", "trip_id", id, "owner", owner.Email)
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.TripService.DeleteForOwner: %w", err)
	}
	s.log.InfoContext(ctx, "trip deleted", "trip_id", id, "owner", owner.Email)
	return nil
}

// HasOverlappingCurrentTrip reports whether the candidate overlaps one of the
// owner's currently-active trips. Unlike the create-path check it ignores
// historical and far-future trips.
func (s *TripService) HasOverlappingCurrentTrip(ctx context.Context, trip domain.Trip, owner domain.Owner) (bool, error) {
	existing, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return false, fmt.Errorf("service.TripService.HasOverlappingCurrentTrip: %w", err)
	}
	return domain.HasOverlappingCurrentTrip(trip, existing, s.now()), nil
}

// RefreshMissingCoordinates sweeps all trips lacking coordinates and
// re-resolves each destination. Per-trip failures are logged and skipped;
// only a failure to enumerate the candidates aborts the sweep.
func (s *TripService) RefreshMissingCoordinates(ctx context.Context) error {
	trips, err := s.repo.ListMissingCoordinates(ctx)
	if err != nil {
		return fmt.Errorf("service.TripService.RefreshMissingCoordinates: %w", err)
	}

	var updated int
	for _, trip := range trips {
		coords := s.resolveCoordinates(ctx, trip.Destination)
		if coords == nil {
			continue
		}
		if err := s.repo.UpdateCoordinates(ctx, trip.ID, coords.Latitude, coords.Longitude); err != nil {
			s.log.WarnContext(ctx, "coordinate update failed", "trip_id", trip.ID, "error", err)
			continue
		}
		updated++
	}
	s.log.InfoContext(ctx, "coordinate sweep finished", "candidates", len(trips), "updated", updated)
	return nil
}

// resolveCoordinates wraps the geocoding call with the absorb-all-failures
// policy: any error is logged at Warn and surfaces as nil coordinates.
func (s *TripService) resolveCoordinates(ctx context.Context, destination string) *geocode.Coordinates {
	coords, err := s.geo.Resolve(ctx, destination)
	if err != nil {
		s.log.WarnContext(ctx, "geocoding failed", "destination", destination, "error", err)
		return nil
	}
	return coords
}

// validateTrip enforces the create-path business rules:
//   - Destination must be non-empty (whitespace-only is rejected).
//   - When both dates are set, the end must not precede the start.
//
// A single bound is allowed; such a trip is simply unscheduled.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.Scheduled() && trip.EndDate.Before(*trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
