package handler

import (
	"errors"

	"neolingo/internal/dto"
	"neolingo/internal/logger"
	"neolingo/internal/middleware"
	"neolingo/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a local account for a verified external identity.
// @Summary Register
// @Description Creates a user for a verified external identity and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 409 {object} middleware.ErrorResponse "Already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	tokens, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.Status(fiber.StatusConflict).JSON(middleware.ErrorResponse{
				Code: "USER_EXISTS", Message: err.Error(), Status: fiber.StatusConflict,
			})
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tokens)
}

// Login issues a token pair for an existing user.
// @Summary Login
// @Description Issues a fresh token pair for a verified external identity.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "External identity"
// @Success 200 {object} dto.TokenResponse
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	tokens, err := h.authService.Login(c.Context(), req.ExternalID)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// CompleteOnboarding records the target language choice and assigns the
// EXPLORER starter role.
// @Summary Complete onboarding
// @Description Sets the user's target language and assigns the EXPLORER role.
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.OnboardingRequest true "Target language"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 404 {object} middleware.ErrorResponse "Language not found"
// @Router /auth/onboarding [post]
func (h *AuthHandler) CompleteOnboarding(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	var req dto.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.authService.CompleteOnboarding(c.Context(), userID, &req); err != nil {
		return err
	}
	logger.Get().Info("Onboarding completed",
		zap.String("userID", userID),
		zap.String("languageID", req.LanguageID))
	return c.JSON(dto.MessageResponse{Message: "onboarding completed"})
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "refresh_token is required", Status: fiber.StatusBadRequest,
		})
	}

	tokens, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_REFRESH_TOKEN", Message: "Invalid refresh token", Status: fiber.StatusUnauthorized,
		})
	}
	return c.JSON(tokens)
}
