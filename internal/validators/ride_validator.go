package validators

import (
	"strings"

	"jamride/internal/services"
)

// ValidateCreateRide checks a ride creation payload beyond tag-level rules:
// the concert must carry a parseable date or the listing would be born
// expired.
func ValidateCreateRide(request *services.CreateRideRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if strings.TrimSpace(request.Departure) == "" {
		errors = append(errors, ValidationError{
			Field:   "Departure",
			Tag:     "required",
			Message: "Departure is required",
		})
	}

	if request.Concert.Artist == "" {
		errors = append(errors, ValidationError{
			Field:   "Artist",
			Tag:     "required",
			Message: "Concert artist is required",
		})
	}

	if request.Concert.Date == "" || !concertDateValid(request.Concert.Date) {
		errors = append(errors, ValidationError{
			Field:   "Date",
			Tag:     "concert_date",
			Value:   request.Concert.Date,
			Message: "Date must be a calendar date (YYYY-MM-DD)",
		})
	}

	return dedupeErrors(errors)
}

func dedupeErrors(errors ValidationErrors) ValidationErrors {
	seen := make(map[string]bool, len(errors))
	out := errors[:0]
	for _, err := range errors {
		if seen[err.Field] {
			continue
		}
		seen[err.Field] = true
		out = append(out, err)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
