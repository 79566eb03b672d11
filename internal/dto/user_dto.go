package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest represents the request body for creating an account.
// @Description Request body for user registration
type RegisterRequest struct {
	ExternalID  string `json:"external_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name"`
}

// OnboardingRequest selects the user's target language and completes signup.
// @Description Request body for completing onboarding
type OnboardingRequest struct {
	LanguageID string `json:"language_id" validate:"required"`
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserProfileResponse defines the structure for a user's profile information.
// @Description User profile with role and target language
type UserProfileResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	RoleName       string `json:"role_name,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems int `json:"total_items"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}
