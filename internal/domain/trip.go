// Package domain contains the core data types for the HiVoyage trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the aggregate root: a planned journey to a destination, owned by a
// single user. Itinerary items and packing items belong to the trip and are
// never persisted or addressed independently of it.
//
// StartDate and EndDate are date-valued (UTC midnight) and both optional.
// A trip with only one bound set is treated as unscheduled for conflict and
// status purposes.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	OwnerEmail  string     `json:"owner_email"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	// Latitude/Longitude are resolved best-effort from the destination text.
	// A trip without coordinates is a valid trip.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Itinerary []ItineraryItem `json:"itinerary"`
	Packing   []PackingItem   `json:"packing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Countdown and Status are derived at read time by the service layer and
	// never persisted. Countdown is set on list reads, Status on single reads.
	Countdown string `json:"countdown,omitempty"`
	Status    string `json:"status,omitempty"`
}

// NormalizeChildren replaces nil child slices with empty ones.
// A trip in memory never carries a nil itinerary or packing list.
func (t *Trip) NormalizeChildren() {
	if t.Itinerary == nil {
		t.Itinerary = []ItineraryItem{}
	}
	if t.Packing == nil {
		t.Packing = []PackingItem{}
	}
}

// Scheduled reports whether both date bounds are set.
// Trips with zero or one bound never participate in conflict checks.
func (t Trip) Scheduled() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// HasCoordinates reports whether both latitude and longitude are set.
func (t Trip) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// ItineraryItem is a single planned activity on a given day of the trip.
// Day is 1-based and kept dense by DeleteItineraryDay.
type ItineraryItem struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// PackingItem is one entry on the trip's packing checklist, keyed by name.
type PackingItem struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}
