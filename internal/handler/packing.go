package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/middleware"
)

// addPackingItemRequest is the body of POST /trips/{tripID}/packing.
type addPackingItemRequest struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// renamePackingItemRequest is the body of PUT /trips/{tripID}/packing/{name}.
type renamePackingItemRequest struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// packingStatusRequest is the body of PATCH /trips/{tripID}/packing/{name}/status.
type packingStatusRequest struct {
	Checked bool `json:"checked"`
}

// AddPackingItem handles POST /trips/{tripID}/packing.
func (s *Server) AddPackingItem(w http.ResponseWriter, r *http.Request) {
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

	var body addPackingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip, err := s.packing.Add(r.Context(), id, owner, body.Name, body.Checked)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tripToResponse(trip))
}

// RenamePackingItem handles PUT /trips/{tripID}/packing/{name}.
// The path parameter is the current name; the body carries the new name and
// checked state.
func (s *Server) RenamePackingItem(w http.ResponseWriter, r *http.Request) {
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

	var body renamePackingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip, err := s.packing.Rename(r.Context(), id, owner, chi.URLParam(r, "name"), body.Name, body.Checked)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// SetPackingItemStatus handles PATCH /trips/{tripID}/packing/{name}/status.
func (s *Server) SetPackingItemStatus(w http.ResponseWriter, r *http.Request) {
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

	var body packingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body is required")
		return
	}

	trip, err := s.packing.SetChecked(r.Context(), id, owner, chi.URLParam(r, "name"), body.Checked)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeletePackingItem handles DELETE /trips/{tripID}/packing/{name}.
// Unlike trip deletion this is not idempotent: deleting an absent item is 404,
// matching the packing manager contract.
func (s *Server) DeletePackingItem(w http.ResponseWriter, r *http.Request) {
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

	if _, err := s.packing.Delete(r.Context(), id, owner, chi.URLParam(r, "name")); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
