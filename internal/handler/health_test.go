package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/store"
)

// fakeObserver is a test double for handler.StoreObserver.
type fakeObserver struct {
	status store.Status
	feed   chan []domain.Itinerary
}

func (f *fakeObserver) Status() store.Status { return f.status }

func (f *fakeObserver) Subscribe() (<-chan []domain.Itinerary, func()) {
	return f.feed, func() {}
}

var _ handler.StoreObserver = (*fakeObserver)(nil)

func getHealth(t *testing.T, obs handler.StoreObserver) handler.HealthResponse {
	t.Helper()
	h := handler.NewServer(nil, nil, nil, obs).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and "ok" once the store is loaded and saving cleanly.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	body := getHealth(t, &fakeObserver{status: store.Status{Loaded: true, Count: 2}})

	require.Equal(t, "ok", body.Status)
	require.True(t, body.Loaded)
	require.Equal(t, 2, body.Itineraries)
	require.Empty(t, body.LastSaveError)
}

func TestGetHealth_degradedBeforeLoad(t *testing.T) {
	body := getHealth(t, &fakeObserver{status: store.Status{Loaded: false}})

	require.Equal(t, "degraded", body.Status)
	require.False(t, body.Loaded)
}

// TestGetHealth_degradedAfterSaveFailure verifies that a failed save is
// surfaced as a warning without taking the service down.
func TestGetHealth_degradedAfterSaveFailure(t *testing.T) {
	body := getHealth(t, &fakeObserver{status: store.Status{Loaded: true, LastSaveError: errors.New("disk full")}})

	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "disk full", body.LastSaveError)
}

// TestGetHealth_degradedAfterLoadFailure verifies that a failed load, which
// turns saving off, is reported to clients.
func TestGetHealth_degradedAfterLoadFailure(t *testing.T) {
	body := getHealth(t, &fakeObserver{status: store.Status{Loaded: true, LoadError: errors.New("connection refused")}})

	require.Equal(t, "degraded", body.Status)
	require.True(t, body.Loaded)
	require.Equal(t, "connection refused", body.LoadError)
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	h := handler.NewServer(nil, nil, nil, nil).Handler()
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "openapi:")
}
