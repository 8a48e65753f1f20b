package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
)

// ItineraryService applies itinerary mutations to a trip aggregate.
// It loads the owned trip, mutates it in memory, and persists through the
// lifecycle service's child-mutation path so the whole change — including the
// day renumbering done by a day delete — lands in one store transaction.
type ItineraryService struct {
	trips *TripService
}

// NewItineraryService constructs an ItineraryService on top of the lifecycle service.
func NewItineraryService(trips *TripService) *ItineraryService {
	return &ItineraryService{trips: trips}
}

// AddItem appends an activity to the given day of the owner's trip.
// The day is caller-supplied and may open a new day or extend an existing one.
// Returns domain.ErrValidation for a non-positive day or blank title, and
// domain.ErrNotFound when the trip is missing or foreign-owned.
func (s *ItineraryService) AddItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error) {
	if day < 1 {
		return domain.Trip{}, fmt.Errorf("%w: day must be a positive integer", domain.ErrValidation)
	}
	if strings.TrimSpace(title) == "" {
		return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}

	trip.AddItineraryItem(day, title, location, description)

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}
	return saved, nil
}

// DeleteDay removes every item on the given day and closes the gap by
// renumbering later days down by one. Removal and renumbering are persisted
// together; a reader can never observe one without the other.
func (s *ItineraryService) DeleteDay(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int) (domain.Trip, error) {
	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.DeleteDay: %w", err)
	}

	trip.DeleteItineraryDay(day)

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.DeleteDay: %w", err)
	}
	return saved, nil
}

// DeleteItem removes the single item matching all four fields exactly,
// without renumbering. Returns domain.ErrNotFound when no item matches.
func (s *ItineraryService) DeleteItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error) {
	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}

	if err := trip.DeleteItineraryItem(day, title, location, description); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}
	return saved, nil
}
