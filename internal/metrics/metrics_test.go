package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
	"github.com/pkordes/travel-planner/internal/store"
)

var _ store.Recorder = (*metrics.Collector)(nil)

func TestCollector_StoreMetrics(t *testing.T) {
	c := metrics.NewCollector("test")

	c.ObserveMutation("update", domain.Applied)
	c.ObserveMutation("update", domain.NoOp)
	c.ObserveMutation("delete", domain.NoOp)
	c.ObserveSave(10*time.Millisecond, nil)
	c.ObserveSave(10*time.Millisecond, errors.New("boom"))
	c.SetItineraries(3)
	c.SetLoaded(true)

	n, err := testutil.GatherAndCount(c.Registry(), "test_store_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "one series per op/result pair")

	n, err = testutil.GatherAndCount(c.Registry(), "test_store_saves_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_ObserveRetry(t *testing.T) {
	c := metrics.NewCollector("test")

	c.ObserveRetry("Set", 1, errors.New("timeout"))
	c.ObserveRetry("Set", 2, errors.New("timeout"))

	n, err := testutil.GatherAndCount(c.Registry(), "test_storage_retries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_Middleware_UsesRoutePattern(t *testing.T) {
	c := metrics.NewCollector("test")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/itineraries/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/itineraries/"+id, nil))
	}

	n, err := testutil.GatherAndCount(c.Registry(), "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "ids must not create new series")
}

func TestCollector_Handler_ServesExposition(t *testing.T) {
	c := metrics.NewCollector("test")
	c.SetLoaded(true)
	rec := httptest.NewRecorder()

	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_store_loaded 1")
}
