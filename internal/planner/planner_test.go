package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/planner"
)

func TestGeneratePlan_ThreeDaysBeach(t *testing.T) {
	plan := planner.GeneratePlan(3, []string{"Praia"})

	require.Len(t, plan, 3)
	assert.Equal(t, "Arrival", plan[0].Title)
	assert.Equal(t, "Day 2", plan[1].Title)
	assert.Equal(t, "Final day", plan[2].Title)

	entry, ok := planner.Lookup("Praia")
	require.True(t, ok)
	for i, day := range plan {
		assert.Equal(t, i+1, day.Day)
		require.NotEmpty(t, day.Activities)
		for _, a := range day.Activities {
			assert.Contains(t, entry.Activities, a)
		}
		for _, p := range day.Places {
			assert.Contains(t, entry.Places, p)
		}
	}
}

func TestGeneratePlan_Deterministic(t *testing.T) {
	a := planner.GeneratePlan(5, []string{"Cultura", "Aventura"})
	b := planner.GeneratePlan(5, []string{"Cultura", "Aventura"})

	assert.Equal(t, a, b)
}

func TestGeneratePlan_CyclesInterests(t *testing.T) {
	plan := planner.GeneratePlan(4, []string{"Cultura", "Aventura"})

	cultura, _ := planner.Lookup("Cultura")
	aventura, _ := planner.Lookup("Aventura")
	assert.Equal(t, cultura.Activities[:2], plan[0].Activities)
	assert.Equal(t, aventura.Activities[:2], plan[1].Activities)
	assert.Equal(t, cultura.Activities[:2], plan[2].Activities)
	assert.Equal(t, aventura.Activities[:2], plan[3].Activities)
}

func TestGeneratePlan_NoInterestsUsesDefaultPair(t *testing.T) {
	plan := planner.GeneratePlan(2, nil)

	first, _ := planner.Lookup(planner.DefaultInterests[0])
	second, _ := planner.Lookup(planner.DefaultInterests[1])
	require.Len(t, plan, 2)
	assert.Equal(t, first.Places[:2], plan[0].Places)
	assert.Equal(t, second.Places[:2], plan[1].Places)
}

func TestGeneratePlan_SingleDayIsArrival(t *testing.T) {
	plan := planner.GeneratePlan(1, []string{"Natureza"})

	require.Len(t, plan, 1)
	assert.Equal(t, "Arrival", plan[0].Title)
}

func TestGeneratePlan_UnknownInterestFallsBack(t *testing.T) {
	plan := planner.GeneratePlan(2, []string{"Underwater basket weaving"})

	fallback, ok := planner.Lookup("Underwater basket weaving")
	assert.False(t, ok)
	require.Len(t, plan, 2)
	assert.Equal(t, fallback.Activities[:2], plan[0].Activities)
}

func TestGeneratePlan_NonPositiveDays(t *testing.T) {
	assert.Empty(t, planner.GeneratePlan(0, []string{"Praia"}))
	assert.NotNil(t, planner.GeneratePlan(-2, nil))
}

func TestGeneratePlan_ResultDoesNotAliasCatalog(t *testing.T) {
	plan := planner.GeneratePlan(1, []string{"Compras"})
	plan[0].Activities[0] = "mutated"

	entry, _ := planner.Lookup("Compras")
	assert.NotEqual(t, "mutated", entry.Activities[0])
}

func TestInterests_AllHaveEntries(t *testing.T) {
	for _, name := range planner.Interests() {
		_, ok := planner.Lookup(name)
		assert.True(t, ok, "interest %q has no catalog entry", name)
	}
}
