package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// UpdateInput is the validated form of a partial update. Nil pointers and
// nil slices are fields the patch leaves alone. The rules match CreateInput,
// RestaurantInput and ChecklistInput.
type UpdateInput struct {
	Title           *string           `json:"title" validate:"omitnil,required,max=120"`
	DestinationID   *string           `json:"destinationId" validate:"omitnil,required"`
	DestinationName *string           `json:"destinationName" validate:"omitnil,required,max=120"`
	Days            *int              `json:"days" validate:"omitnil,min=1,max=30"`
	Budget          *domain.Budget    `json:"budget" validate:"omitnil,oneof=Economic Moderate Luxury"`
	Interests       []string          `json:"interests" validate:"max=10,dive,required,max=40"`
	Restaurants     []RestaurantEntry `json:"restaurants" validate:"unique=ID,dive"`
	Checklist       []ChecklistEntry  `json:"checklist" validate:"unique=ID,dive"`
}

// RestaurantEntry is one restaurant in a patch that replaces the list.
type RestaurantEntry struct {
	ID         string            `json:"id" validate:"required,max=64"`
	Name       string            `json:"name" validate:"required,max=120"`
	Category   string            `json:"category" validate:"max=60"`
	PriceLevel domain.PriceLevel `json:"priceLevel" validate:"required,oneof=$ $$ $$$"`
	Location   string            `json:"location" validate:"max=120"`
}

// ChecklistEntry is one checklist item in a patch that replaces the list.
type ChecklistEntry struct {
	ID   string `json:"id" validate:"required,max=64"`
	Text string `json:"text" validate:"required,max=200"`
	Done bool   `json:"done"`
}

// newUpdateInput copies the fields p sets, trimming text and giving nested
// entries without an id a fresh one.
func newUpdateInput(p domain.ItineraryPatch) UpdateInput {
	in := UpdateInput{
		Title:           trimmed(p.Title),
		DestinationID:   p.DestinationID,
		DestinationName: trimmed(p.DestinationName),
		Days:            p.Days,
		Budget:          p.Budget,
	}
	if p.Interests != nil {
		in.Interests = *p.Interests
	}
	if p.Restaurants != nil {
		in.Restaurants = make([]RestaurantEntry, len(*p.Restaurants))
		for i, r := range *p.Restaurants {
			in.Restaurants[i] = RestaurantEntry{
				ID:         idOrNew(r.ID),
				Name:       strings.TrimSpace(r.Name),
				Category:   strings.TrimSpace(r.Category),
				PriceLevel: r.PriceLevel,
				Location:   strings.TrimSpace(r.Location),
			}
		}
	}
	if p.Checklist != nil {
		in.Checklist = make([]ChecklistEntry, len(*p.Checklist))
		for i, c := range *p.Checklist {
			in.Checklist[i] = ChecklistEntry{ID: idOrNew(c.ID), Text: strings.TrimSpace(c.Text), Done: c.Done}
		}
	}
	return in
}

// writeTo copies the normalised values back into p.
func (in UpdateInput) writeTo(p *domain.ItineraryPatch) {
	p.Title = in.Title
	p.DestinationName = in.DestinationName
	if p.Restaurants != nil {
		list := make([]domain.Restaurant, len(in.Restaurants))
		for i, r := range in.Restaurants {
			list[i] = domain.Restaurant{ID: r.ID, Name: r.Name, Category: r.Category, PriceLevel: r.PriceLevel, Location: r.Location}
		}
		p.Restaurants = &list
	}
	if p.Checklist != nil {
		list := make([]domain.ChecklistItem, len(in.Checklist))
		for i, c := range in.Checklist {
			list[i] = domain.ChecklistItem{ID: c.ID, Text: c.Text, Done: c.Done}
		}
		p.Checklist = &list
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}
