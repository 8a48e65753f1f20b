package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/middleware"
)

// createTripRequest is the body of POST /trips. Dates are date-only strings
// ("2006-01-02") on the wire, handled by the openapi runtime Date type.
type createTripRequest struct {
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
}

// tripResponse is the JSON shape of a trip aggregate.
type tripResponse struct {
	ID          uuid.UUID              `json:"id"`
	Destination string                 `json:"destination"`
	StartDate   *openapi_types.Date    `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date    `json:"end_date,omitempty"`
	Latitude    *float64               `json:"latitude,omitempty"`
	Longitude   *float64               `json:"longitude,omitempty"`
	Itinerary   []domain.ItineraryItem `json:"itinerary"`
	Packing     []domain.PackingItem   `json:"packing"`
	Countdown   string                 `json:"countdown,omitempty"`
	Status      string                 `json:"status,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// listTripsResponse wraps GET /trips.
type listTripsResponse struct {
	Data []tripResponse `json:"data"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		respondError(w, errors.New("owner missing from context"))
		return
	}

	var body createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip := domain.Trip{Destination: body.Destination}
	if body.StartDate != nil {
		sd := body.StartDate.Time
		trip.StartDate = &sd
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		trip.EndDate = &ed
	}

	created, err := s.trips.Create(r.Context(), trip, owner)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Trips come back sorted by start date with unscheduled trips last, each
// carrying its countdown label.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		respondError(w, errors.New("owner missing from context"))
		return
	}

	trips, err := s.trips.ListForOwner(r.Context(), owner)
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	respondJSON(w, http.StatusOK, listTripsResponse{Data: data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		respondError(w, errors.New("owner missing from context"))
		return
	}

	id, err := tripIDParam(r)
	if err != nil {
		respondError(w, domain.ErrNotFound)
		return
	}

	trip, err := s.trips.GetByIDForOwner(r.Context(), id, owner)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{tripID}.
// Deletion is idempotent: deleting a missing or foreign trip still yields 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		respondError(w, errors.New("owner missing from context"))
		return
	}

	id, err := tripIDParam(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := s.trips.DeleteForOwner(r.Context(), id, owner); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// tripIDParam parses the {tripID} path parameter.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "tripID"))
}

// tripToResponse converts a domain.Trip into its wire shape.
func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:          t.ID,
		Destination: t.Destination,
		Latitude:    t.Latitude,
		Longitude:   t.Longitude,
		Itinerary:   t.Itinerary,
		Packing:     t.Packing,
		Countdown:   t.Countdown,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if resp.Itinerary == nil {
		resp.Itinerary = []domain.ItineraryItem{}
	}
	if resp.Packing == nil {
		resp.Packing = []domain.PackingItem{}
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	if t.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return resp
}
