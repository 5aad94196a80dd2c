package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
)

func itineraryFixture() domain.Itinerary {
	return domain.Itinerary{
		ID:              "it-1",
		Title:           "Rio Getaway",
		DestinationID:   "rio",
		DestinationName: "Rio de Janeiro",
		Days:            2,
		Budget:          domain.BudgetModerate,
		Interests:       []string{"Praia"},
		DailyPlan: []domain.DayPlan{
			{Day: 1, Title: "Arrival", Activities: []string{"a"}, Places: []string{"p"}},
			{Day: 2, Title: "Final day", Activities: []string{"b"}, Places: []string{"q"}},
		},
		Checklist: []domain.ChecklistItem{{ID: "c1", Text: "Passport", Done: false}},
		CreatedAt: "2025-01-10T12:00:00Z",
	}
}

func TestItineraryPatch_ApplyTo_OnlyTitle(t *testing.T) {
	orig := itineraryFixture()
	title := "Rio v2"

	got := domain.ItineraryPatch{Title: &title}.ApplyTo(orig)

	want := itineraryFixture()
	want.Title = "Rio v2"
	assert.Equal(t, want, got)
	// The input record must not be modified.
	assert.Equal(t, "Rio Getaway", orig.Title)
}

func TestItineraryPatch_ApplyTo_CopiesSlices(t *testing.T) {
	checklist := []domain.ChecklistItem{{ID: "c1", Text: "Passport", Done: true}}

	got := domain.ItineraryPatch{Checklist: &checklist}.ApplyTo(itineraryFixture())
	checklist[0].Text = "mutated after apply"

	require.Len(t, got.Checklist, 1)
	assert.Equal(t, "Passport", got.Checklist[0].Text)
	assert.True(t, got.Checklist[0].Done)
}

func TestItineraryPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.ItineraryPatch{}.IsEmpty())

	days := 3
	assert.False(t, domain.ItineraryPatch{Days: &days}.IsEmpty())
}

func TestItinerary_Clone_IsDeep(t *testing.T) {
	orig := itineraryFixture()
	c := orig.Clone()

	c.Interests[0] = "Cultura"
	c.DailyPlan[0].Activities[0] = "changed"
	c.Checklist[0].Done = true

	assert.Equal(t, "Praia", orig.Interests[0])
	assert.Equal(t, "a", orig.DailyPlan[0].Activities[0])
	assert.False(t, orig.Checklist[0].Done)
}

func TestBudget_Valid(t *testing.T) {
	assert.True(t, domain.BudgetLuxury.Valid())
	assert.False(t, domain.Budget("Cheap").Valid())
	assert.True(t, domain.PriceMedium.Valid())
	assert.False(t, domain.PriceLevel("$$$$").Valid())
}

func TestMutationResult_String(t *testing.T) {
	assert.Equal(t, "applied", domain.Applied.String())
	assert.Equal(t, "no-op", domain.NoOp.String())
}
