package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ExportCSVHeader is the first row of every CSV export.
var ExportCSVHeader = []string{
	"itinerary_id", "title", "destination", "days", "budget", "created_at",
	"day", "day_title", "activities", "places",
	"checklist_done", "checklist_total",
}

// Export returns one ExportRow per planned day across all itineraries, in
// collection order. Itineraries with an empty plan contribute one row with
// zero day fields.
func (s *ItineraryService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	items := s.store.List()
	rows := make([]domain.ExportRow, 0, len(items))
	for _, it := range items {
		done := 0
		for _, c := range it.Checklist {
			if c.Done {
				done++
			}
		}
		base := domain.ExportRow{
			ItineraryID:     it.ID,
			Title:           it.Title,
			DestinationName: it.DestinationName,
			Days:            it.Days,
			Budget:          it.Budget,
			CreatedAt:       it.CreatedAt,
			ChecklistDone:   done,
			ChecklistTotal:  len(it.Checklist),
		}
		if len(it.DailyPlan) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, d := range it.DailyPlan {
			row := base
			row.Day = d.Day
			row.DayTitle = d.Title
			row.Activities = d.Activities
			row.Places = d.Places
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// WriteExportCSV writes rows as CSV with a header row. Activities and places
// within a row are pipe-separated ("|") to keep each day on a single line.
func WriteExportCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(exportCSVRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportCSVRecord flattens one row. A zero day (an itinerary without a plan)
// is written as an empty cell.
func exportCSVRecord(r domain.ExportRow) []string {
	day := ""
	if r.Day > 0 {
		day = strconv.Itoa(r.Day)
	}
	return []string{
		r.ItineraryID,
		r.Title,
		r.DestinationName,
		strconv.Itoa(r.Days),
		string(r.Budget),
		r.CreatedAt,
		day,
		r.DayTitle,
		strings.Join(r.Activities, "|"),
		strings.Join(r.Places, "|"),
		strconv.Itoa(r.ChecklistDone),
		strconv.Itoa(r.ChecklistTotal),
	}
}
