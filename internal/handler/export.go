package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-planner/internal/service"
)

// GetExport handles GET /export.
// It returns one row per planned day across every itinerary.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		badRequest(w, err.Error())
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		badRequest(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	if format == nil || *format == "json" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	// Buffer so a late encoding error can still become a 500.
	var buf bytes.Buffer
	if err := service.WriteExportCSV(&buf, rows); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itineraries.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}
