// Package service contains the business logic for the travel planner API.
// Services validate inputs, mint identifiers, and translate requests into
// store mutations. The store itself trusts its callers, so every rule about
// what a valid itinerary looks like lives here.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/planner"
)

// ItineraryStore is the subset of store.Store the service needs.
type ItineraryStore interface {
	List() []domain.Itinerary
	Get(id string) (domain.Itinerary, error)
	Add(it domain.Itinerary) domain.MutationResult
	Update(id string, patch domain.ItineraryPatch) domain.MutationResult
	Delete(id string) domain.MutationResult
}

// DestinationCatalog resolves destination ids. catalog.Catalog implements it.
type DestinationCatalog interface {
	Lookup(id string) (domain.Destination, bool)
	List() []domain.Destination
}

// CreateInput is what the create flow collects from the traveller.
type CreateInput struct {
	Title         string        `json:"title" validate:"required,max=120"`
	DestinationID string        `json:"destinationId" validate:"required"`
	Days          int           `json:"days" validate:"min=1,max=30"`
	Budget        domain.Budget `json:"budget" validate:"required,oneof=Economic Moderate Luxury"`
	Interests     []string      `json:"interests" validate:"max=10,dive,required,max=40"`
}

// defaultChecklist is attached to every new itinerary.
var defaultChecklist = []string{
	"Check passport validity",
	"Confirm transport and hotel bookings",
	"Buy travel insurance",
	"Pack according to the weather forecast",
}

// ItineraryService implements business logic for itinerary operations.
type ItineraryService struct {
	store    ItineraryStore
	catalog  DestinationCatalog
	validate *validator.Validate
	now      func() time.Time

	// mu serialises read-modify-write sequences against the store.
	mu sync.Mutex
}

// NewItineraryService constructs an ItineraryService over st and cat.
func NewItineraryService(st ItineraryStore, cat DestinationCatalog) *ItineraryService {
	return &ItineraryService{
		store:    st,
		catalog:  cat,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Create validates in, builds a complete itinerary and prepends it to the
// collection. Returns domain.ErrValidation if input violates business rules.
func (s *ItineraryService) Create(ctx context.Context, in CreateInput) (domain.Itinerary, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.Itinerary{}, validationError(err)
	}
	dest, ok := s.catalog.Lookup(in.DestinationID)
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("%w: unknown destination %q", domain.ErrValidation, in.DestinationID)
	}

	interests := append([]string{}, in.Interests...)
	checklist := make([]domain.ChecklistItem, len(defaultChecklist))
	for i, text := range defaultChecklist {
		checklist[i] = domain.ChecklistItem{ID: uuid.NewString(), Text: text}
	}

	it := domain.Itinerary{
		ID:              uuid.NewString(),
		Title:           in.Title,
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
		Days:            in.Days,
		Budget:          in.Budget,
		Interests:       interests,
		DailyPlan:       planner.GeneratePlan(in.Days, interests),
		Restaurants:     []domain.Restaurant{},
		Checklist:       checklist,
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
	}
	s.store.Add(it)
	return it, nil
}

// GetByID returns a single itinerary.
// Returns domain.ErrNotFound if no itinerary has that id.
func (s *ItineraryService) GetByID(ctx context.Context, id string) (domain.Itinerary, error) {
	it, err := s.store.Get(id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return it, nil
}

// List returns the collection, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) List(ctx context.Context) ([]domain.Itinerary, error) {
	items := s.store.List()
	if items == nil {
		return []domain.Itinerary{}, nil
	}
	return items, nil
}

// Update validates patch and merges it into the itinerary with id.
// Changing the destination also refreshes the destination name unless the
// patch sets one explicitly. The daily plan is not regenerated.
// Returns domain.ErrValidation for invalid fields, domain.ErrNotFound if the
// update was a no-op.
func (s *ItineraryService) Update(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	if err := s.validatePatch(ctx, &patch); err != nil {
		return domain.Itinerary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Update(id, patch) == domain.NoOp {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", domain.ErrNotFound)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the itinerary with id.
// Returns domain.ErrNotFound if the delete was a no-op.
func (s *ItineraryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Delete(id) == domain.NoOp {
		return fmt.Errorf("service.ItineraryService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Destinations returns the destination catalog.
func (s *ItineraryService) Destinations(ctx context.Context) []domain.Destination {
	return s.catalog.List()
}

// Preview returns the plan the create flow would generate without saving
// anything. Returns domain.ErrValidation if days is out of range.
func (s *ItineraryService) Preview(ctx context.Context, days int, interests []string) ([]domain.DayPlan, error) {
	if days < 1 || days > MaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, MaxDays)
	}
	return planner.GeneratePlan(days, interests), nil
}

// validatePatch runs the fields a patch sets through the same validator
// rules as Create. It trims text, mints ids for nested entries that arrive
// without one, and fills in DestinationName from the catalog.
func (s *ItineraryService) validatePatch(ctx context.Context, p *domain.ItineraryPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: patch sets no fields", domain.ErrValidation)
	}
	in := newUpdateInput(*p)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return validationError(err)
	}
	in.writeTo(p)

	if p.DestinationID != nil {
		dest, ok := s.catalog.Lookup(*p.DestinationID)
		if !ok {
			return fmt.Errorf("%w: unknown destination %q", domain.ErrValidation, *p.DestinationID)
		}
		if p.DestinationName == nil {
			p.DestinationName = &dest.Name
		}
	}
	return nil
}
