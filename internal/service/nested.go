package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ChecklistInput is a new checklist entry.
type ChecklistInput struct {
	Text string `json:"text" validate:"required,max=200"`
}

// RestaurantInput is a new restaurant suggestion.
type RestaurantInput struct {
	Name       string            `json:"name" validate:"required,max=120"`
	Category   string            `json:"category" validate:"max=60"`
	PriceLevel domain.PriceLevel `json:"priceLevel" validate:"required,oneof=$ $$ $$$"`
	Location   string            `json:"location" validate:"max=120"`
}

// AddChecklistItem appends a new, not yet done entry to the itinerary's
// checklist. Returns domain.ErrNotFound if the itinerary does not exist.
func (s *ItineraryService) AddChecklistItem(ctx context.Context, id string, in ChecklistInput) (domain.ChecklistItem, error) {
	in.Text = strings.TrimSpace(in.Text)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.ChecklistItem{}, validationError(err)
	}
	item := domain.ChecklistItem{ID: uuid.NewString(), Text: in.Text}

	err := s.modify(id, func(it domain.Itinerary) (domain.ItineraryPatch, error) {
		list := append(it.Checklist, item)
		return domain.ItineraryPatch{Checklist: &list}, nil
	})
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ItineraryService.AddChecklistItem: %w", err)
	}
	return item, nil
}

// SetChecklistItemDone marks one checklist entry done or not done.
// Returns domain.ErrNotFound if the itinerary or the entry does not exist.
func (s *ItineraryService) SetChecklistItemDone(ctx context.Context, id, itemID string, done bool) (domain.ChecklistItem, error) {
	var updated domain.ChecklistItem
	err := s.modify(id, func(it domain.Itinerary) (domain.ItineraryPatch, error) {
		list := it.Checklist
		for i := range list {
			if list[i].ID == itemID {
				list[i].Done = done
				updated = list[i]
				return domain.ItineraryPatch{Checklist: &list}, nil
			}
		}
		return domain.ItineraryPatch{}, domain.ErrNotFound
	})
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ItineraryService.SetChecklistItemDone: %w", err)
	}
	return updated, nil
}

// RemoveChecklistItem deletes one checklist entry.
// Returns domain.ErrNotFound if the itinerary or the entry does not exist.
func (s *ItineraryService) RemoveChecklistItem(ctx context.Context, id, itemID string) error {
	err := s.modify(id, func(it domain.Itinerary) (domain.ItineraryPatch, error) {
		for i := range it.Checklist {
			if it.Checklist[i].ID == itemID {
				list := append(it.Checklist[:i:i], it.Checklist[i+1:]...)
				return domain.ItineraryPatch{Checklist: &list}, nil
			}
		}
		return domain.ItineraryPatch{}, domain.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveChecklistItem: %w", err)
	}
	return nil
}

// AddRestaurant appends a restaurant suggestion to the itinerary.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// itinerary does not exist.
func (s *ItineraryService) AddRestaurant(ctx context.Context, id string, in RestaurantInput) (domain.Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.Restaurant{}, validationError(err)
	}
	r := domain.Restaurant{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Category:   strings.TrimSpace(in.Category),
		PriceLevel: in.PriceLevel,
		Location:   strings.TrimSpace(in.Location),
	}

	err := s.modify(id, func(it domain.Itinerary) (domain.ItineraryPatch, error) {
		list := append(it.Restaurants, r)
		return domain.ItineraryPatch{Restaurants: &list}, nil
	})
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.ItineraryService.AddRestaurant: %w", err)
	}
	return r, nil
}

// RemoveRestaurant deletes one restaurant suggestion.
// Returns domain.ErrNotFound if the itinerary or the restaurant does not exist.
func (s *ItineraryService) RemoveRestaurant(ctx context.Context, id, restaurantID string) error {
	err := s.modify(id, func(it domain.Itinerary) (domain.ItineraryPatch, error) {
		for i := range it.Restaurants {
			if it.Restaurants[i].ID == restaurantID {
				list := append(it.Restaurants[:i:i], it.Restaurants[i+1:]...)
				return domain.ItineraryPatch{Restaurants: &list}, nil
			}
		}
		return domain.ItineraryPatch{}, domain.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveRestaurant: %w", err)
	}
	return nil
}

// modify reads the itinerary, derives a patch from it and applies the patch,
// all while holding s.mu so concurrent nested edits cannot lose each other.
// The store hands out copies, so fn may mutate what it receives.
func (s *ItineraryService) modify(id string, fn func(domain.Itinerary) (domain.ItineraryPatch, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.Get(id)
	if err != nil {
		return err
	}
	patch, err := fn(it)
	if err != nil {
		return err
	}
	if s.store.Update(id, patch) == domain.NoOp {
		return domain.ErrNotFound
	}
	return nil
}
