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

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the profile information of the logged-in user, including role and target language.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	profile, err := h.userService.GetUserProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(middleware.ErrorResponse{
				Code: "USER_PROFILE_NOT_FOUND", Message: err.Error(), Status: fiber.StatusNotFound,
			})
		}
		logger.Get().Error("Failed to get user profile", zap.String("userID", userID), zap.Error(err))
		return err
	}
	return c.JSON(profile)
}

// UpdateMyProfile changes the authenticated user's display name.
// @Summary Update My Profile
// @Description Updates the logged-in user's display name.
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Profile changes"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [patch]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.userService.UpdateDisplayName(c.Context(), userID, req.DisplayName); err != nil {
		if errors.Is(err, service.ErrUserProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(middleware.ErrorResponse{
				Code: "USER_PROFILE_NOT_FOUND", Message: err.Error(), Status: fiber.StatusNotFound,
			})
		}
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "profile updated"})
}
