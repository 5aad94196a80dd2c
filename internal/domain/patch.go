package domain

// ItineraryPatch carries a partial update. Only non-nil fields are applied;
// everything else on the target record is left untouched.
// ID and CreatedAt are deliberately absent: they are immutable.
type ItineraryPatch struct {
	Title           *string          `json:"title,omitempty"`
	DestinationID   *string          `json:"destinationId,omitempty"`
	DestinationName *string          `json:"destinationName,omitempty"`
	Days            *int             `json:"days,omitempty"`
	Budget          *Budget          `json:"budget,omitempty"`
	Interests       *[]string        `json:"interests,omitempty"`
	DailyPlan       *[]DayPlan       `json:"dailyPlan,omitempty"`
	Restaurants     *[]Restaurant    `json:"restaurants,omitempty"`
	Checklist       *[]ChecklistItem `json:"checklist,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p ItineraryPatch) IsEmpty() bool {
	return p.Title == nil && p.DestinationID == nil && p.DestinationName == nil &&
		p.Days == nil && p.Budget == nil && p.Interests == nil && p.DailyPlan == nil &&
		p.Restaurants == nil && p.Checklist == nil
}

// ApplyTo returns a copy of it with the patch fields merged in.
// Slice fields are copied so the result never shares memory with the patch.
func (p ItineraryPatch) ApplyTo(it Itinerary) Itinerary {
	out := it.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.DestinationID != nil {
		out.DestinationID = *p.DestinationID
	}
	if p.DestinationName != nil {
		out.DestinationName = *p.DestinationName
	}
	if p.Days != nil {
		out.Days = *p.Days
	}
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Interests != nil {
		out.Interests = cloneStrings(*p.Interests)
	}
	if p.DailyPlan != nil {
		out.DailyPlan = Itinerary{DailyPlan: *p.DailyPlan}.Clone().DailyPlan
	}
	if p.Restaurants != nil {
		out.Restaurants = append([]Restaurant{}, *p.Restaurants...)
	}
	if p.Checklist != nil {
		out.Checklist = append([]ChecklistItem{}, *p.Checklist...)
	}
	return out
}

// MutationResult tells a caller whether an update or delete touched a record.
// A missing id is not an error; it yields NoOp.
type MutationResult int

const (
	NoOp MutationResult = iota
	Applied
)

func (r MutationResult) String() string {
	if r == Applied {
		return "applied"
	}
	return "no-op"
}
