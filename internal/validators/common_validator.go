package validators

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("concert_date", validateConcertDate)
	validate.RegisterValidation("place_name", validatePlaceName)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields flattens the errors into a field -> message map for API responses.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "concert_date":
		return "Date must be a calendar date (YYYY-MM-DD)"
	case "place_name":
		return "Place name contains invalid characters"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// validateConcertDate accepts plain calendar dates and full RFC3339
// timestamps, the two shapes the event provider emits.
func validateConcertDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // let required handle empty values
	}
	return concertDateValid(value)
}

func concertDateValid(value string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func validatePlaceName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	// Geocoder queries are free text; only reject control characters.
	for _, r := range value {
		if r < 0x20 {
			return false
		}
	}
	return true
}
