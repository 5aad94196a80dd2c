package store

import (
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/planner"
)

// Seed returns the fixed default collection shown before the initial load
// resolves and kept when nothing has been persisted yet. Each call returns a
// fresh copy.
func Seed() []domain.Itinerary {
	return []domain.Itinerary{
		{
			ID:              "seed-rio-de-janeiro",
			Title:           "Carnival weekend in Rio",
			DestinationID:   "rio-de-janeiro",
			DestinationName: "Rio de Janeiro",
			Days:            4,
			Budget:          domain.BudgetModerate,
			Interests:       []string{"Praia", "Vida Noturna"},
			DailyPlan:       planner.GeneratePlan(4, []string{"Praia", "Vida Noturna"}),
			Restaurants: []domain.Restaurant{
				{ID: "seed-rio-r1", Name: "Confeitaria Colombo", Category: "Cafe", PriceLevel: domain.PriceMedium, Location: "Centro"},
				{ID: "seed-rio-r2", Name: "Bar Urca", Category: "Seafood", PriceLevel: domain.PriceLow, Location: "Urca"},
			},
			Checklist: []domain.ChecklistItem{
				{ID: "seed-rio-c1", Text: "Book hotel in Copacabana", Done: true},
				{ID: "seed-rio-c2", Text: "Buy Sugarloaf cable car tickets", Done: false},
			},
			CreatedAt: "2025-01-10T09:00:00Z",
		},
		{
			ID:              "seed-lisbon",
			Title:           "Long weekend in Lisbon",
			DestinationID:   "lisbon",
			DestinationName: "Lisbon",
			Days:            3,
			Budget:          domain.BudgetEconomic,
			Interests:       []string{"Cultura", "Gastronomia"},
			DailyPlan:       planner.GeneratePlan(3, []string{"Cultura", "Gastronomia"}),
			Restaurants: []domain.Restaurant{
				{ID: "seed-lis-r1", Name: "Time Out Market", Category: "Food hall", PriceLevel: domain.PriceMedium, Location: "Cais do Sodré"},
			},
			Checklist: []domain.ChecklistItem{
				{ID: "seed-lis-c1", Text: "Check passport validity", Done: false},
			},
			CreatedAt: "2025-01-05T18:30:00Z",
		},
	}
}
