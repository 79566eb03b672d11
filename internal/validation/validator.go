package validation

import (
	"regexp"
	"strings"

	"neolingo/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID validates a ULID path or query parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// ValidateSubmitAttemptRequest validates a quiz submission body.
func (v *Validator) ValidateSubmitAttemptRequest(score, totalQuestions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if totalQuestions <= 0 || totalQuestions > 100 {
		errors = append(errors, domain.NewOutOfRangeError("total_questions", totalQuestions, 1, 100))
	}
	if score < 0 || (totalQuestions > 0 && score > totalQuestions) {
		errors = append(errors, domain.NewOutOfRangeError("score", score, 0, totalQuestions))
	}

	return errors
}

// ValidateSuggestionText validates a proposed translation.
func (v *Validator) ValidateSuggestionText(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(text) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("text", len(text), 1, 200))
	}

	return errors
}

// ValidatePagination clamps paging parameters into their allowed range.
func (v *Validator) ValidatePagination(limit, offset int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if limit < 0 || limit > 100 {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, 100))
	}
	if offset < 0 {
		errors = append(errors, domain.NewOutOfRangeError("offset", offset, 0, 1<<30))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
