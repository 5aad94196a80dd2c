package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-planner/internal/service"
)

// checklistUpdate is the body of PATCH /itineraries/{id}/checklist/{itemId}.
type checklistUpdate struct {
	Done *bool `json:"done"`
}

// AddChecklistItem handles POST /itineraries/{id}/checklist.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	var in service.ChecklistInput
	if err := decodeBody(r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}

	item, err := s.itineraries.AddChecklistItem(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateChecklistItem handles PATCH /itineraries/{id}/checklist/{itemId}.
func (s *Server) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	var body checklistUpdate
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Done == nil {
		badRequest(w, "done is required")
		return
	}

	item, err := s.itineraries.SetChecklistItemDone(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), *body.Done)
	if err != nil {
		s.serviceError(w, r, err, "checklist item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteChecklistItem handles DELETE /itineraries/{id}/checklist/{itemId}.
func (s *Server) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := s.itineraries.RemoveChecklistItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId")); err != nil {
		s.serviceError(w, r, err, "checklist item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddRestaurant handles POST /itineraries/{id}/restaurants.
func (s *Server) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	var in service.RestaurantInput
	if err := decodeBody(r, &in); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.itineraries.AddRestaurant(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteRestaurant handles DELETE /itineraries/{id}/restaurants/{restaurantId}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.itineraries.RemoveRestaurant(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "restaurantId")); err != nil {
		s.serviceError(w, r, err, "restaurant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
