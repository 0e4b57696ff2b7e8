package validators

import "strings"

const maxMessageLength = 2000

// ValidateMessageText rejects empty or oversized chat messages.
func ValidateMessageText(text string) ValidationErrors {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ValidationErrors{{
			Field:   "Text",
			Tag:     "required",
			Message: "Text is required",
		}}
	}
	if len(text) > maxMessageLength {
		return ValidationErrors{{
			Field:   "Text",
			Tag:     "max",
			Message: "Text is too long",
		}}
	}
	return nil
}
