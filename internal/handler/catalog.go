package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Destinations(r.Context()))
}

// PreviewPlan handles GET /plans/preview?days=3&interests=Praia&interests=Cultura.
// It returns the daily plan the create flow would generate, without saving.
func (s *Server) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	var (
		days      int
		interests []string
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "days", q, &days); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "interests", q, &interests); err != nil {
		badRequest(w, err.Error())
		return
	}

	plan, err := s.catalog.Preview(r.Context(), days, interests)
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
