package handler

import (
	"strconv"

	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/logger"
	"neolingo/internal/middleware"
	"neolingo/internal/service"
	"neolingo/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CuratorHandler serves the curator promotion quiz endpoints.
type CuratorHandler struct {
	curatorService service.CuratorService
	validator      *validation.Validator
}

func NewCuratorHandler(curatorService service.CuratorService) *CuratorHandler {
	return &CuratorHandler{
		curatorService: curatorService,
		validator:      validation.NewValidator(),
	}
}

func userIDFromContext(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}
	return userID, nil
}

// CheckEligibility reports whether the user may take the curator quiz.
// @Summary Check curator quiz eligibility
// @Description Returns whether the user may take the curator quiz, and when a cooldown ends.
// @Tags curator
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.EligibilityResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /curator/eligibility [get]
func (h *CuratorHandler) CheckEligibility(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	resp, err := h.curatorService.CheckEligibility(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizQuestions serves a fresh question set for the user's target language.
// @Summary Get curator quiz questions
// @Description Returns a random set of active questions for the user's target language, with the correct option value for client-side scoring.
// @Tags curator
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.QuizQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse "No target language selected"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Not eligible"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /curator/quiz [get]
func (h *CuratorHandler) GetQuizQuestions(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	resp, err := h.curatorService.GetQuizQuestions(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAttempt records a scored quiz submission.
// @Summary Submit curator quiz attempt
// @Description Records the attempt and promotes the user to CONTRIBUTOR on a passing score.
// @Tags curator
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitAttemptRequest true "Scored submission"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid submission"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /curator/attempts [post]
func (h *CuratorHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse attempt submission", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateSubmitAttemptRequest(req.Score, req.TotalQuestions); len(errs) > 0 {
		return errs
	}

	resp, err := h.curatorService.SubmitAttempt(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAttemptHistory returns a page of the user's quiz attempts.
// @Summary List curator quiz attempts
// @Description Returns the user's attempt history, newest first.
// @Tags curator
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.AttemptListResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /curator/attempts [get]
func (h *CuratorHandler) GetAttemptHistory(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	pagination, errs := parsePagination(c, h.validator)
	if len(errs) > 0 {
		return errs
	}

	resp, err := h.curatorService.GetAttemptHistory(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func parsePagination(c *fiber.Ctx, v *validation.Validator) (dto.Pagination, domain.ValidationErrors) {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if errs := v.ValidatePagination(limit, offset); len(errs) > 0 {
		return dto.Pagination{}, errs
	}
	if limit == 0 {
		limit = 10
	}
	return dto.Pagination{Limit: limit, Offset: offset}, nil
}
