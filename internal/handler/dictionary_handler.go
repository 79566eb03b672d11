package handler

import (
	"neolingo/internal/dto"
	"neolingo/internal/middleware"
	"neolingo/internal/service"
	"neolingo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DictionaryHandler serves dictionary browsing and the community suggestion
// workflow.
type DictionaryHandler struct {
	dictionaryService service.DictionaryService
	validator         *validation.Validator
}

func NewDictionaryHandler(dictionaryService service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryService: dictionaryService,
		validator:         validation.NewValidator(),
	}
}

// ListLanguages lists the active target languages.
// @Summary List languages
// @Description Returns the active target languages available for contribution.
// @Tags dictionary
// @Produce json
// @Success 200 {array} dto.LanguageResponse
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /languages [get]
func (h *DictionaryHandler) ListLanguages(c *fiber.Ctx) error {
	languages, err := h.dictionaryService.ListLanguages(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(languages)
}

// ListWords returns a page of a language's dictionary.
// @Summary List words
// @Description Returns a page of dictionary entries for a language, ordered by lemma.
// @Tags dictionary
// @Produce json
// @Param languageId path string true "Language ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.WordListResponse
// @Failure 404 {object} middleware.ErrorResponse "Language not found"
// @Router /languages/{languageId}/words [get]
func (h *DictionaryHandler) ListWords(c *fiber.Ctx) error {
	languageID := c.Params("languageId")
	if errs := h.validator.ValidateID("languageId", languageID); len(errs) > 0 {
		return errs
	}

	pagination, errs := parsePagination(c, h.validator)
	if len(errs) > 0 {
		return errs
	}

	resp, err := h.dictionaryService.ListWords(c.Context(), languageID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateWord adds a curated dictionary entry.
// @Summary Create word
// @Description Adds a dictionary entry. Requires the CONTRIBUTOR or ADMIN role.
// @Tags dictionary
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateWordRequest true "Word data"
// @Success 201 {object} dto.WordResponse
// @Failure 403 {object} middleware.ErrorResponse "Insufficient role"
// @Failure 404 {object} middleware.ErrorResponse "Language not found"
// @Router /words [post]
func (h *DictionaryHandler) CreateWord(c *fiber.Ctx) error {
	var req dto.CreateWordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.dictionaryService.CreateWord(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SuggestTranslation records a proposed translation for a word.
// @Summary Suggest translation
// @Description Records the user's proposed translation for a word, pending review.
// @Tags dictionary
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param wordId path string true "Word ID"
// @Param request body dto.SuggestionRequest true "Suggestion text"
// @Success 201 {object} dto.SuggestionResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid suggestion"
// @Failure 404 {object} middleware.ErrorResponse "Word not found"
// @Router /words/{wordId}/suggestions [post]
func (h *DictionaryHandler) SuggestTranslation(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	var req dto.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateSuggestionText(req.Text); len(errs) > 0 {
		return errs
	}

	resp, err := h.dictionaryService.SuggestTranslation(c.Context(), userID, c.Params("wordId"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListSuggestions lists a word's suggestions with vote tallies.
// @Summary List suggestions
// @Description Returns a word's suggestions with their up and down vote counts.
// @Tags dictionary
// @Produce json
// @Param wordId path string true "Word ID"
// @Success 200 {object} dto.SuggestionListResponse
// @Router /words/{wordId}/suggestions [get]
func (h *DictionaryHandler) ListSuggestions(c *fiber.Ctx) error {
	resp, err := h.dictionaryService.ListSuggestions(c.Context(), c.Params("wordId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Vote records an up or down vote on a suggestion.
// @Summary Vote on suggestion
// @Description Records or updates the user's vote on a suggestion.
// @Tags dictionary
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param suggestionId path string true "Suggestion ID"
// @Param request body dto.VoteRequest true "Vote value (1 or -1)"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid vote"
// @Failure 404 {object} middleware.ErrorResponse "Suggestion not found"
// @Router /suggestions/{suggestionId}/votes [put]
func (h *DictionaryHandler) Vote(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if userID == "" {
		return err
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateID("suggestionId", c.Params("suggestionId")); len(errs) > 0 {
		return errs
	}

	if err := h.dictionaryService.Vote(c.Context(), userID, c.Params("suggestionId"), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "vote recorded"})
}

// ReviewSuggestion approves or rejects a suggestion.
// @Summary Review suggestion
// @Description Moves a suggestion to APPROVED or REJECTED. Requires the CONTRIBUTOR or ADMIN role.
// @Tags dictionary
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param suggestionId path string true "Suggestion ID"
// @Param request body dto.ReviewRequest true "Review decision"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid decision"
// @Failure 403 {object} middleware.ErrorResponse "Insufficient role"
// @Failure 404 {object} middleware.ErrorResponse "Suggestion not found"
// @Router /suggestions/{suggestionId}/review [post]
func (h *DictionaryHandler) ReviewSuggestion(c *fiber.Ctx) error {
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.dictionaryService.ReviewSuggestion(c.Context(), c.Params("suggestionId"), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "suggestion reviewed"})
}
