package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/travel-planner/internal/domain"
)

// MaxDays is the longest itinerary the create flow will generate.
const MaxDays = 30

// newValidator returns a validator that reports fields by their JSON name,
// so messages match what API clients sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns a validator failure into a domain.ErrValidation
// describing the first offending field by its JSON path.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	fe := verrs[0]
	// Namespace is "UpdateInput.checklist[0].text"; drop the struct name.
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	case "min", "gte":
		return fmt.Errorf("%w: %s must be at least %s", domain.ErrValidation, field, fe.Param())
	case "max", "lte":
		return fmt.Errorf("%w: %s must be at most %s", domain.ErrValidation, field, fe.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s]", domain.ErrValidation, field, fe.Param())
	case "unique":
		return fmt.Errorf("%w: %s must not repeat an id", domain.ErrValidation, field)
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
	}
}
