package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/middleware"
)

// itineraryItemRequest is the body of the itinerary add and delete endpoints.
// Delete matches all four fields exactly against a stored item.
type itineraryItemRequest struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// AddItineraryItem handles POST /trips/{tripID}/itinerary.
func (s *Server) AddItineraryItem(w http.ResponseWriter, r *http.Request) {
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

	var body itineraryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip, err := s.itinerary.AddItem(r.Context(), id, owner, body.Day, body.Title, body.Location, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tripToResponse(trip))
}

// DeleteItineraryDay handles DELETE /trips/{tripID}/itinerary/days/{day}.
// The whole day is removed and later days are renumbered down by one.
func (s *Server) DeleteItineraryDay(w http.ResponseWriter, r *http.Request) {
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

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 {
		respondBadRequest(w, "day must be a positive integer")
		return
	}

	trip, err := s.itinerary.DeleteDay(r.Context(), id, owner, day)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteItineraryItem handles POST /trips/{tripID}/itinerary/delete.
// A POST rather than a DELETE because the exact-match selector travels in the
// request body.
func (s *Server) DeleteItineraryItem(w http.ResponseWriter, r *http.Request) {
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

	var body itineraryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip, err := s.itinerary.DeleteItem(r.Context(), id, owner, body.Day, body.Title, body.Location, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}
