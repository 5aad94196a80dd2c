// Package domain contains the core data types for the travel planner.
// This package depends only on the standard library and is imported by every
// other internal package (storage, repo, store, service, handler).
package domain

// Budget is the spending tier chosen when an itinerary is created.
type Budget string

const (
	BudgetEconomic Budget = "Economic"
	BudgetModerate Budget = "Moderate"
	BudgetLuxury   Budget = "Luxury"
)

// Valid reports whether b is one of the known budget tiers.
func (b Budget) Valid() bool {
	switch b {
	case BudgetEconomic, BudgetModerate, BudgetLuxury:
		return true
	}
	return false
}

// PriceLevel is the rough cost of a restaurant.
type PriceLevel string

const (
	PriceLow    PriceLevel = "$"
	PriceMedium PriceLevel = "$$"
	PriceHigh   PriceLevel = "$$$"
)

// Valid reports whether p is one of the known price levels.
func (p PriceLevel) Valid() bool {
	switch p {
	case PriceLow, PriceMedium, PriceHigh:
		return true
	}
	return false
}

// DayPlan is one day of an itinerary. Day is 1-based.
type DayPlan struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
	Places     []string `json:"places"`
}

// Restaurant is a suggested place to eat attached to an itinerary.
type Restaurant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	PriceLevel PriceLevel `json:"priceLevel"`
	Location   string     `json:"location"`
}

// ChecklistItem is a to-do entry attached to an itinerary.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Itinerary is a single saved travel plan and the aggregate root of the store.
// The JSON shape is the persisted layout: the stored value is a JSON array of
// Itinerary records with no version field.
//
// ID and CreatedAt are set once by the create flow and never change.
// CreatedAt is an ISO-8601 (RFC 3339) timestamp string.
type Itinerary struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DestinationID   string          `json:"destinationId"`
	DestinationName string          `json:"destinationName"`
	Days            int             `json:"days"`
	Budget          Budget          `json:"budget"`
	Interests       []string        `json:"interests"`
	DailyPlan       []DayPlan       `json:"dailyPlan"`
	Restaurants     []Restaurant    `json:"restaurants"`
	Checklist       []ChecklistItem `json:"checklist"`
	CreatedAt       string          `json:"createdAt"`
}

// Clone returns a deep copy of it. The store hands out clones so no caller
// can reach the slices it owns.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Interests = cloneStrings(it.Interests)
	if it.DailyPlan != nil {
		out.DailyPlan = make([]DayPlan, len(it.DailyPlan))
		for i, d := range it.DailyPlan {
			d.Activities = cloneStrings(d.Activities)
			d.Places = cloneStrings(d.Places)
			out.DailyPlan[i] = d
		}
	}
	if it.Restaurants != nil {
		out.Restaurants = append(make([]Restaurant, 0, len(it.Restaurants)), it.Restaurants...)
	}
	if it.Checklist != nil {
		out.Checklist = append(make([]ChecklistItem, 0, len(it.Checklist)), it.Checklist...)
	}
	return out
}

// CloneAll deep-copies a collection, preserving order.
func CloneAll(items []Itinerary) []Itinerary {
	out := make([]Itinerary, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
