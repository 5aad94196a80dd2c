package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-planner/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Request-Id", "req-1")
	w.WriteHeader(http.StatusOK)
})

const appOrigin = "http://localhost:5173"

func TestCORS_SimpleRequests(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(okHandler)

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origin: appOrigin, wantAllow: appOrigin},
		{name: "foreign origin", origin: "http://evil.example.com", wantAllow: ""},
		{name: "no origin", origin: "", wantAllow: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/itineraries", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			// CORS never changes the status; the browser enforces the header.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_ExposesRequestIDAndRetryAfter(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/itineraries", nil)
	req.Header.Set("Origin", appOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	exposed := strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, "x-request-id")
	assert.Contains(t, exposed, "retry-after")
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(okHandler)

	tests := []struct {
		method  string
		allowed bool
	}{
		{method: http.MethodPatch, allowed: true},
		{method: http.MethodDelete, allowed: true},
		{method: http.MethodPut, allowed: false},
	}
	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/itineraries/abc", nil)
			req.Header.Set("Origin", appOrigin)
			req.Header.Set("Access-Control-Request-Method", tc.method)
			// Browsers send request header names lowercased.
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300)
			if tc.allowed {
				assert.Equal(t, appOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
