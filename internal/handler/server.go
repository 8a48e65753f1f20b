// Package handler implements the HTTP surface of the HiVoyage API.
// Handlers are methods on Server, split into domain-specific files (trip.go,
// itinerary.go, packing.go, health.go) that all share the same struct.
//
// Handlers only translate between HTTP and the service layer: decode, call,
// map errors, encode. Owner identity is read from the request context, where
// the owner middleware placed it after the external auth layer's headers.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/middleware"
)

// TripServicer defines the lifecycle operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, owner domain.Owner) (domain.Trip, error)
	ListForOwner(ctx context.Context, owner domain.Owner) ([]domain.Trip, error)
	GetByIDForOwner(ctx context.Context, id uuid.UUID, owner domain.Owner) (domain.Trip, error)
	DeleteForOwner(ctx context.Context, id uuid.UUID, owner domain.Owner) error
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	AddItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error)
	DeleteDay(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int) (domain.Trip, error)
	DeleteItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error)
}

// PackingServicer defines the packing-list operations the handlers depend on.
type PackingServicer interface {
	Add(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string, checked bool) (domain.Trip, error)
	Rename(ctx context.Context, tripID uuid.UUID, owner domain.Owner, oldName, newName string, checked bool) (domain.Trip, error)
	SetChecked(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string, checked bool) (domain.Trip, error)
	Delete(ctx context.Context, tripID uuid.UUID, owner domain.Owner, name string) (domain.Trip, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	packing   PackingServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, itinerary ItineraryServicer, packing PackingServicer) *Server {
	return &Server{trips: trips, itinerary: itinerary, packing: packing}
}

// Routes mounts every endpoint on a fresh chi router. The caller (main.go or
// a test) wires this under whatever middleware stack it wants.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		// Everything under /trips requires the auth layer's identity headers.
		// /healthz stays open for load balancer probes.
		r.Use(middleware.NewOwnerContext())

		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/itinerary", s.AddItineraryItem)
			r.Delete("/itinerary/days/{day}", s.DeleteItineraryDay)
			r.Post("/itinerary/delete", s.DeleteItineraryItem)

			r.Post("/packing", s.AddPackingItem)
			r.Put("/packing/{name}", s.RenamePackingItem)
			r.Patch("/packing/{name}/status", s.SetPackingItemStatus)
			r.Delete("/packing/{name}", s.DeletePackingItem)
		})
	})

	return r
}
