package handler

import (
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/middleware"
	"neolingo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the quiz question management endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// questionRequest carries a question's editable content.
type questionRequest struct {
	LanguageID    string                   `json:"language_id"`
	Text          string                   `json:"text"`
	Options       []dto.QuizOptionResponse `json:"options"`
	CorrectAnswer string                   `json:"correct_answer"`
	IsActive      bool                     `json:"is_active"`
}

func (r *questionRequest) toDomain() *domain.QuizQuestion {
	options := make([]domain.QuizOption, len(r.Options))
	for i, opt := range r.Options {
		options[i] = domain.QuizOption{Label: opt.Label, Value: opt.Value}
	}
	return &domain.QuizQuestion{
		LanguageID:    r.LanguageID,
		Text:          r.Text,
		Options:       options,
		CorrectAnswer: r.CorrectAnswer,
		IsActive:      r.IsActive,
	}
}

// CreateQuestion adds a question to the curator quiz bank.
// @Summary Create quiz question
// @Description Adds a question to the curator quiz bank. Requires the ADMIN role.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid question"
// @Failure 403 {object} middleware.ErrorResponse "Insufficient role"
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(c *fiber.Ctx) error {
	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	created, err := h.adminService.CreateQuestion(c.Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": created.ID})
}

// UpdateQuestion rewrites an existing question.
// @Summary Update quiz question
// @Description Rewrites a question's content. Requires the ADMIN role.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/questions/{questionId} [put]
func (h *AdminHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	question := req.toDomain()
	question.ID = c.Params("questionId")
	if err := h.adminService.UpdateQuestion(c.Context(), question); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "question updated"})
}

// SetQuestionActive toggles whether a question is served to quiz-takers.
// @Summary Toggle quiz question
// @Description Activates or deactivates a question. Requires the ADMIN role.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/questions/{questionId}/active [patch]
func (h *AdminHandler) SetQuestionActive(c *fiber.Ctx) error {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.adminService.SetQuestionActive(c.Context(), c.Params("questionId"), req.Active); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "question updated"})
}
