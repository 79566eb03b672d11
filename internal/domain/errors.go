package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Curator quiz errors
	CodeNoTargetLanguage ErrorCode = "NO_TARGET_LANGUAGE"
	CodeQuestionFetch    ErrorCode = "QUESTION_FETCH_FAILED"
	CodeSubmissionFailed ErrorCode = "SUBMISSION_FAILED"

	// Dictionary errors
	CodeLanguageNotFound   ErrorCode = "LANGUAGE_NOT_FOUND"
	CodeWordNotFound       ErrorCode = "WORD_NOT_FOUND"
	CodeSuggestionNotFound ErrorCode = "SUGGESTION_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

// NewNoTargetLanguageError reports the precondition failure of requesting
// quiz questions before choosing a target language.
func NewNoTargetLanguageError() *DomainError {
	return NewError(CodeNoTargetLanguage, "no target language selected", nil)
}

func NewQuestionFetchError(cause error) *DomainError {
	return NewError(CodeQuestionFetch, "failed to retrieve test questions", cause)
}

func NewSubmissionFailedError(cause error) *DomainError {
	return NewError(CodeSubmissionFailed, "failed to process quiz submission", cause)
}

func NewLanguageNotFoundError(languageID string) *DomainError {
	return NewError(CodeLanguageNotFound, fmt.Sprintf("language not found: %s", languageID), nil)
}
