package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
)

const itineraryNotFound = "itinerary not found"

// ListItineraries handles GET /itineraries.
// The collection is returned most recent first; it is small enough that
// there is no pagination.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	items, err := s.itineraries.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var in service.CreateInput
	if err := decodeBody(r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.itineraries.Create(r.Context(), in)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	w.Header().Set("Location", "/itineraries/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// GetItinerary handles GET /itineraries/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	it, err := s.itineraries.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// UpdateItinerary handles PATCH /itineraries/{id}.
// Only the fields present in the body change. An unknown id answers 404 so
// clients can tell an applied update from a no-op.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	var patch domain.ItineraryPatch
	if err := decodeBody(r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	updated, err := s.itineraries.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteItinerary handles DELETE /itineraries/{id}.
// Returns 204 when a record was removed and 404 when there was nothing to remove.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	if err := s.itineraries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
