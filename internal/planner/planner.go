// Package planner turns a day count and a list of interests into a daily plan.
// Generation is a fixed lookup: there is no ranking, randomness, or I/O, so the
// same inputs always produce the same plan.
package planner

import (
	"fmt"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Entry is the fixed set of suggestions for one interest.
type Entry struct {
	Activities []string
	Places     []string
}

// DefaultInterests are used when the traveller selects none.
var DefaultInterests = []string{"Cultura", "Gastronomia"}

// catalog maps an interest to its suggestions. Keys match the interest labels
// offered by the create flow.
var catalog = map[string]Entry{
	"Praia": {
		Activities: []string{"Relax on the main beach", "Sunset walk along the shore", "Snorkeling tour"},
		Places:     []string{"Central beach", "Seaside promenade", "Lighthouse point"},
	},
	"Cultura": {
		Activities: []string{"Guided tour of the historic center", "Visit the city museum", "Evening concert"},
		Places:     []string{"Historic center", "City museum", "Municipal theater"},
	},
	"Gastronomia": {
		Activities: []string{"Street food tasting", "Cooking class with a local chef", "Wine and cheese tasting"},
		Places:     []string{"Central market", "Food street", "Riverside bistro"},
	},
	"Aventura": {
		Activities: []string{"Morning hike to the viewpoint", "Zip-line circuit", "Kayak excursion"},
		Places:     []string{"National park trailhead", "Adventure park", "River base camp"},
	},
	"Natureza": {
		Activities: []string{"Botanical garden walk", "Waterfall trail", "Birdwatching at dawn"},
		Places:     []string{"Botanical garden", "Waterfall park", "Nature reserve"},
	},
	"Compras": {
		Activities: []string{"Browse the artisan fair", "Shopping district stroll", "Outlet visit"},
		Places:     []string{"Artisan fair", "Main shopping street", "Outlet mall"},
	},
	"Vida Noturna": {
		Activities: []string{"Rooftop bar evening", "Live music night", "Night tour of the old town"},
		Places:     []string{"Rooftop bar", "Music hall", "Old town square"},
	},
}

// perDay is how many activities and places each day takes from an entry.
const perDay = 2

// Interests returns the interest labels that have catalog entries, in the
// order the create flow offers them.
func Interests() []string {
	return []string{"Praia", "Cultura", "Gastronomia", "Aventura", "Natureza", "Compras", "Vida Noturna"}
}

// Lookup returns the catalog entry for interest. Unknown interests resolve to
// the first default interest so generation stays total.
func Lookup(interest string) (Entry, bool) {
	e, ok := catalog[interest]
	if !ok {
		return catalog[DefaultInterests[0]], false
	}
	return e, true
}

// GeneratePlan builds exactly days entries. Day i (0-based) uses
// interests[i mod len(interests)], or DefaultInterests when none are given.
// Day 0 is titled "Arrival", the last day "Final day", the rest "Day N".
// A non-positive days yields an empty plan.
func GeneratePlan(days int, interests []string) []domain.DayPlan {
	if days <= 0 {
		return []domain.DayPlan{}
	}
	if len(interests) == 0 {
		interests = DefaultInterests
	}

	plan := make([]domain.DayPlan, days)
	for i := range days {
		entry, _ := Lookup(interests[i%len(interests)])
		plan[i] = domain.DayPlan{
			Day:        i + 1,
			Title:      dayTitle(i, days),
			Activities: head(entry.Activities, perDay),
			Places:     head(entry.Places, perDay),
		}
	}
	return plan
}

func dayTitle(i, days int) string {
	switch {
	case i == 0:
		return "Arrival"
	case i == days-1:
		return "Final day"
	default:
		return fmt.Sprintf("Day %d", i+1)
	}
}

// head returns a copy of at most n leading elements of s.
func head(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	return append([]string(nil), s[:n]...)
}
