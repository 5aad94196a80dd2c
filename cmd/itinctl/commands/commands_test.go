package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/cmd/itinctl/commands"
	"github.com/pkordes/travel-planner/internal/domain"
)

// run executes itinctl against a file store in dir.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("STORAGE_KEY", "")
	t.Setenv("STORAGE_PASSPHRASE", "")

	var out, errOut bytes.Buffer
	full := append([]string{"--env-file", filepath.Join(dir, "missing.env")}, args...)
	err := commands.Execute(full, &out, &errOut)
	return out.String(), errOut.String(), err
}

func listJSON(t *testing.T, dir string) []domain.Itinerary {
	t.Helper()
	out, _, err := run(t, dir, "list", "--json")
	require.NoError(t, err)
	var items []domain.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func TestList_EmptyStorageShowsSeed(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, dir, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "seed-rio-de-janeiro")
	assert.Contains(t, out, "seed-lisbon")
}

func TestCreate_PersistsAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, dir, "create",
		"--title", "Beach week",
		"--destination", "rio-de-janeiro",
		"--days", "3",
		"--budget", "Luxury",
		"--interest", "Praia")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	items := listJSON(t, dir)
	require.Len(t, items, 3)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Beach week", items[0].Title)
	assert.Len(t, items[0].DailyPlan, 3)

	out, _, err = run(t, dir, "show", id)
	require.NoError(t, err)
	var shown domain.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, items[0], shown)
}

func TestCreate_InvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, errOut, err := run(t, dir, "create", "--title", "", "--destination", "rio-de-janeiro")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, errOut, "title")
}

// TestCreate_RefusesWhenStorageUnreadable verifies that an edit is not made
// on top of the seed when the stored collection cannot be read.
func TestCreate_RefusesWhenStorageUnreadable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SAVE_MAX_RETRIES", "0")
	// A directory where the collection file belongs makes every read fail.
	blocker := filepath.Join(dir, "_travel_planner_itineraries.json")
	require.NoError(t, os.Mkdir(blocker, 0o700))

	_, _, err := run(t, dir, "create", "--title", "Beach week", "--destination", "rio-de-janeiro")

	assert.ErrorContains(t, err, "could not be read")
	info, statErr := os.Stat(blocker)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir(), "stored collection must be left untouched")
}

func TestShow_NotFound(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_AppliedThenNoOp(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, dir, "delete", "seed-lisbon")
	require.NoError(t, err)
	assert.Equal(t, "applied\n", out)

	out, _, err = run(t, dir, "delete", "seed-lisbon")
	require.NoError(t, err)
	assert.Equal(t, "no-op\n", out)

	items := listJSON(t, dir)
	require.Len(t, items, 1)
	assert.Equal(t, "seed-rio-de-janeiro", items[0].ID)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, dir, "delete", "seed-lisbon")
	require.NoError(t, err)

	_, _, err = run(t, dir, "reset")
	require.Error(t, err)
	assert.Len(t, listJSON(t, dir), 1)

	out, _, err := run(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "reset to 2")
	assert.Len(t, listJSON(t, dir), 2)
}

func TestExport_CSV(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "export")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, four Rio days, three Lisbon days
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "itinerary_id,title,"))
	assert.True(t, strings.HasPrefix(lines[1], "seed-rio-de-janeiro,"))
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "export", "--format", "xml")

	assert.ErrorContains(t, err, "csv or json")
}

func TestPlan_PrintsEveryDay(t *testing.T) {
	var out, errOut bytes.Buffer

	err := commands.Execute([]string{"plan", "--days", "3", "--interest", "Praia"}, &out, &errOut)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1. Arrival")
	assert.Contains(t, out.String(), "2. Day 2")
	assert.Contains(t, out.String(), "3. Final day")
}
