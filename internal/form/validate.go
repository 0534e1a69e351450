package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"usersearch/internal/domain"
)

// ErrInvalidCriteria is wrapped by every validation failure.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// Validator checks search criteria against the form's input constraints.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator with the paired_digits rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("paired_digits", func(fl validator.FieldLevel) bool {
		return IsFormattedNumber(fl.Field().String())
	})
	return &Validator{v: v}
}

// Normalize returns criteria as they would be sent: email trimmed of
// surrounding whitespace, number run through FormatNumber.
func Normalize(c domain.SearchCriteria) domain.SearchCriteria {
	return domain.SearchCriteria{
		Email:  strings.TrimSpace(c.Email),
		Number: FormatNumber(c.Number),
	}
}

// Criteria validates c. The returned error wraps ErrInvalidCriteria and
// names the first offending field in user-facing terms.
func (val *Validator) Criteria(c domain.SearchCriteria) error {
	err := val.v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: email is required", ErrInvalidCriteria)
		}
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidCriteria, c.Email)
	case "Number":
		return fmt.Errorf("%w: number must use the format xx-xx-xx", ErrInvalidCriteria)
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidCriteria, fe.Field(), fe.Tag())
	}
}
