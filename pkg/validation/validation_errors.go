package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator errors into a map keyed by the wire field
// name, the shape the API returns under "errors".
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["non_field_errors"] = err.Error()
		return fields
	}

	for _, e := range validationErrors {
		fields[e.Field()] = messageForTag(e)
	}
	return fields
}

func messageForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "Select a valid choice."
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", e.Param())
	case "max":
		return fmt.Sprintf("Ensure this value is at most %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "url":
		return "Enter a valid URL."
	case "valid_name":
		return "Contains invalid characters."
	case "valid_phone":
		return "Enter a valid phone number."
	case "not_future_date":
		return "Date cannot be in the future."
	default:
		return "Invalid value."
	}
}
