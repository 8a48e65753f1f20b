package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
)

// PackingService applies packing-list mutations to a trip aggregate, loading
// and persisting through the lifecycle service like ItineraryService does.
//
// Names are matched case-sensitively; duplicates are allowed at add time and
// single-item operations act on the first match (see the domain package).
type PackingService struct {
	trips *TripService
}

// NewPackingService constructs a PackingService on top of the lifecycle service.
func NewPackingService(trips *TripService) *PackingService {
	return &PackingService{trips: trips}
}

// Add appends an item to the trip's packing list.
// Returns domain.ErrValidation for a blank name.
func (s *PackingService) Add(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string, checked bool) (domain.Trip, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Add: %w", err)
	}

	trip.AddPackingItem(name, checked)

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Add: %w", err)
	}
	return saved, nil
}

// Rename renames the first item matching oldName and resets its checked state.
func (s *PackingService) Rename(ctx context.Context, tripID uuid.UUID, owner domain.Owner, oldName, newName string, checked bool) (domain.Trip, error) {
	if strings.TrimSpace(newName) == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Rename: %w", err)
	}

	if err := trip.RenamePackingItem(oldName, newName, checked); err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Rename: %w", err)
	}

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Rename: %w", err)
	}
	return saved, nil
}

// SetChecked flips the checked state of the first item matching name.
func (s *PackingService) SetChecked(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string, checked bool) (domain.Trip, error) {
	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.SetChecked: %w", err)
	}

	if err := trip.SetPackingItemChecked(name, checked); err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.SetChecked: %w", err)
	}

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.SetChecked: %w", err)
	}
	return saved, nil
}

// Delete removes the first item matching name.
func (s *PackingService) Delete(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string) (domain.Trip, error) {
	trip, err := s.trips.GetByIDForOwner(ctx, tripID, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Delete: %w", err)
	}

	if err := trip.DeletePackingItem(name); err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Delete: %w", err)
	}

	saved, err := s.trips.SaveChildMutation(ctx, trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PackingService.Delete: %w", err)
	}
	return saved, nil
}
