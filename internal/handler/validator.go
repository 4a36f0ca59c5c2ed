package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance.
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	validateOnce.Do(func() {
		validate = &Validator{validate: validator.New()}
	})
	return validate
}

// ValidateStruct validates a struct using its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError flattens validation errors into a field→message map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["error"] = "Invalid request format"
		return out
	}
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			out[field] = "This field is required"
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			out[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}
