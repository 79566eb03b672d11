package service

import (
	"context"

	"neolingo/internal/domain"
	"neolingo/internal/logger"

	"go.uber.org/zap"
)

// AdminService manages the curator quiz question bank. All operations are
// behind the ADMIN role at the route level.
type AdminService interface {
	CreateQuestion(ctx context.Context, question *domain.QuizQuestion) (*domain.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, question *domain.QuizQuestion) error
	SetQuestionActive(ctx context.Context, questionID string, active bool) error
}

type adminService struct {
	questionRepo domain.QuizQuestionRepository
	languageRepo domain.LanguageRepository
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(questionRepo domain.QuizQuestionRepository, languageRepo domain.LanguageRepository) AdminService {
	return &adminService{
		questionRepo: questionRepo,
		languageRepo: languageRepo,
	}
}

// CreateQuestion validates and stores a new quiz question. Questions start
// inactive unless explicitly flagged, so half-written content never reaches
// quiz-takers.
func (s *adminService) CreateQuestion(ctx context.Context, question *domain.QuizQuestion) (*domain.QuizQuestion, error) {
	if err := question.Validate(); err != nil {
		return nil, err
	}

	language, err := s.languageRepo.GetByID(ctx, question.LanguageID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up language", err)
	}
	if language == nil {
		return nil, domain.NewLanguageNotFoundError(question.LanguageID)
	}

	if err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to create question", err)
	}
	logger.Get().Info("Quiz question created",
		zap.String("questionID", question.ID),
		zap.String("languageID", question.LanguageID))
	return question, nil
}

// UpdateQuestion rewrites an existing question's content.
func (s *adminService) UpdateQuestion(ctx context.Context, question *domain.QuizQuestion) error {
	if err := question.Validate(); err != nil {
		return err
	}

	existing, err := s.questionRepo.GetQuestionByID(ctx, question.ID)
	if err != nil {
		return domain.NewInternalError("failed to look up question", err)
	}
	if existing == nil {
		return domain.NewNotFoundError("question not found")
	}

	if err := s.questionRepo.UpdateQuestion(ctx, question); err != nil {
		return domain.NewInternalError("failed to update question", err)
	}
	return nil
}

// SetQuestionActive toggles whether a question is handed out to quiz-takers.
func (s *adminService) SetQuestionActive(ctx context.Context, questionID string, active bool) error {
	if err := s.questionRepo.SetActive(ctx, questionID, active); err != nil {
		return domain.NewInternalError("failed to toggle question", err)
	}
	return nil
}
