// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, itinerary.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/store"
)

// ItineraryServicer defines the business operations the itinerary handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without a store or storage backend.
type ItineraryServicer interface {
	Create(ctx context.Context, in service.CreateInput) (domain.Itinerary, error)
	GetByID(ctx context.Context, id string) (domain.Itinerary, error)
	List(ctx context.Context) ([]domain.Itinerary, error)
	Update(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error)
	Delete(ctx context.Context, id string) error

	AddChecklistItem(ctx context.Context, id string, in service.ChecklistInput) (domain.ChecklistItem, error)
	SetChecklistItemDone(ctx context.Context, id, itemID string, done bool) (domain.ChecklistItem, error)
	RemoveChecklistItem(ctx context.Context, id, itemID string) error
	AddRestaurant(ctx context.Context, id string, in service.RestaurantInput) (domain.Restaurant, error)
	RemoveRestaurant(ctx context.Context, id, restaurantID string) error
}

// CatalogServicer serves the static destination catalog and plan previews.
type CatalogServicer interface {
	Destinations(ctx context.Context) []domain.Destination
	Preview(ctx context.Context, days int, interests []string) ([]domain.DayPlan, error)
}

// ExportServicer defines the operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// StoreObserver exposes the store's health and change feed.
type StoreObserver interface {
	Status() store.Status
	Subscribe() (<-chan []domain.Itinerary, func())
}

// Server holds the dependencies shared by every handler.
type Server struct {
	itineraries ItineraryServicer
	catalog     CatalogServicer
	export      ExportServicer
	observer    StoreObserver
	log         *slog.Logger
	upgrader    websocket.Upgrader
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for handler-level errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithAllowedOrigins restricts which browser origins may open the watch
// websocket. Requests without an Origin header are always accepted.
func WithAllowedOrigins(origins []string) Option {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(s *Server) {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		}
	}
}

// NewServer constructs the Server with all its dependencies. A nil
// dependency disables nothing at construction time; only the routes that
// use it will fail, which keeps single-resource handler tests small.
func NewServer(itineraries ItineraryServicer, catalog CatalogServicer, export ExportServicer, observer StoreObserver, opts ...Option) *Server {
	s := &Server{
		itineraries: itineraries,
		catalog:     catalog,
		export:      export,
		observer:    observer,
		log:         slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers every API route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/itineraries", func(r chi.Router) {
		r.Get("/", s.ListItineraries)
		r.Post("/", s.CreateItinerary)
		r.Get("/watch", s.WatchItineraries)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Patch("/", s.UpdateItinerary)
			r.Delete("/", s.DeleteItinerary)

			r.Post("/checklist", s.AddChecklistItem)
			r.Patch("/checklist/{itemId}", s.UpdateChecklistItem)
			r.Delete("/checklist/{itemId}", s.DeleteChecklistItem)

			r.Post("/restaurants", s.AddRestaurant)
			r.Delete("/restaurants/{restaurantId}", s.DeleteRestaurant)
		})
	})

	r.Get("/destinations", s.ListDestinations)
	r.Get("/plans/preview", s.PreviewPlan)
	r.Get("/export", s.GetExport)
}

// Handler returns a chi router serving every API route, for tests and for
// callers that need no extra middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
