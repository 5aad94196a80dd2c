package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/spec"
)

// TestOpenAPI_DocumentsEveryRoute keeps the embedded document honest: every
// route the server registers must appear in it with the same method.
func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))

	r := chi.NewRouter()
	handler.NewServer(nil, nil, nil, nil).Routes(r)

	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		ops, ok := doc.Paths[route]
		if assert.True(t, ok, "route %s missing from openapi.yaml", route) {
			_, ok = ops[strings.ToLower(method)]
			assert.True(t, ok, "%s %s missing from openapi.yaml", method, route)
		}
		return nil
	})
	require.NoError(t, err)
}
