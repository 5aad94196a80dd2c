package domain

// ExportRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per planned day, with the itinerary fields
// repeated for every day. Itineraries with an empty daily plan yield one row
// with zero values for all day fields.
//
// Activities and Places keep their plan order. Callers that need a joined
// string (e.g. CSV) should join with "|".
type ExportRow struct {
	// Itinerary fields, repeated for every day of the itinerary.
	ItineraryID     string `json:"itineraryId"`
	Title           string `json:"title"`
	DestinationName string `json:"destinationName"`
	Days            int    `json:"days"`
	Budget          Budget `json:"budget"`
	CreatedAt       string `json:"createdAt"`

	// Day fields, zero values when the plan is empty.
	Day        int      `json:"day,omitempty"`
	DayTitle   string   `json:"dayTitle,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Places     []string `json:"places,omitempty"`

	// Checklist progress for the whole itinerary.
	ChecklistDone  int `json:"checklistDone"`
	ChecklistTotal int `json:"checklistTotal"`
}
