package service

import (
	"context"
	"fmt"
	"time"

	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/logger"

	"go.uber.org/zap"
)

// CuratorService defines the interface for the curator promotion workflow:
// eligibility checking, quiz question supply, and attempt processing.
type CuratorService interface {
	// CheckEligibility reports whether the user may take the curator quiz
	// right now, and when not, why and since when that will change.
	CheckEligibility(ctx context.Context, userID string) (*dto.EligibilityResponse, error)

	// GetQuizQuestions returns a fresh random question set for the user's
	// target language, including each question's correct option value so
	// the client can score the sitting locally.
	GetQuizQuestions(ctx context.Context, userID string) (*dto.QuizQuestionsResponse, error)

	// SubmitAttempt records a scored attempt and, on a passing score,
	// promotes the user to CONTRIBUTOR in the same transaction.
	SubmitAttempt(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error)

	// GetAttemptHistory returns a page of the user's past attempts.
	GetAttemptHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error)
}

type curatorService struct {
	userRepo     domain.UserRepository
	roleRepo     domain.RoleRepository
	questionRepo domain.QuizQuestionRepository
	attemptRepo  domain.QuizAttemptRepository
	txManager    domain.TransactionManager
	cacheClient  domain.Cache
	quizConfig   config.CuratorQuizConfig
}

// NewCuratorService creates a new instance of CuratorService.
func NewCuratorService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	questionRepo domain.QuizQuestionRepository,
	attemptRepo domain.QuizAttemptRepository,
	txManager domain.TransactionManager,
	cacheClient domain.Cache,
	quizConfig config.CuratorQuizConfig,
) CuratorService {
	return &curatorService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		txManager:    txManager,
		cacheClient:  cacheClient,
		quizConfig:   quizConfig,
	}
}

func (s *curatorService) cooldown() time.Duration {
	return time.Duration(s.quizConfig.CooldownDays) * 24 * time.Hour
}

// ineligibleOnLookupFailure is the graceful-denial outcome for eligibility
// lookups that fail. Checking eligibility never hard-fails the caller.
func ineligibleOnLookupFailure() *dto.EligibilityResponse {
	return &dto.EligibilityResponse{
		Eligible: false,
		Reason:   "error checking eligibility",
	}
}

// CheckEligibility applies the two gates in order: only EXPLORER users may
// take the quiz, and a failed attempt inside the cooldown window blocks
// retakes until the window elapses.
func (s *curatorService) CheckEligibility(ctx context.Context, userID string) (*dto.EligibilityResponse, error) {
	role, err := s.roleRepo.GetUserRole(ctx, userID)
	if err != nil {
		logger.Get().Error("Failed to resolve user role for eligibility check",
			zap.String("userID", userID), zap.Error(err))
		return ineligibleOnLookupFailure(), nil
	}
	if role == nil {
		return &dto.EligibilityResponse{
			Eligible: false,
			Reason:   "no role assigned; complete onboarding first",
		}, nil
	}
	if role.Name != domain.RoleExplorer {
		return &dto.EligibilityResponse{
			Eligible: false,
			Reason:   "already a curator or admin",
			RoleName: role.Name,
		}, nil
	}

	since := time.Now().Add(-s.cooldown())
	failed, err := s.attemptRepo.GetLatestFailedSince(ctx, userID, since)
	if err != nil {
		logger.Get().Error("Failed to check attempt cooldown",
			zap.String("userID", userID), zap.Error(err))
		return ineligibleOnLookupFailure(), nil
	}
	if failed != nil {
		eligibleAt := failed.CreatedAt.Add(s.cooldown())
		return &dto.EligibilityResponse{
			Eligible:   false,
			Reason:     "cooldown period active",
			EligibleAt: &eligibleAt,
			RoleName:   role.Name,
		}, nil
	}

	return &dto.EligibilityResponse{
		Eligible: true,
		RoleName: role.Name,
	}, nil
}

// GetQuizQuestions serves a random sample of active questions in the user's
// target language, capped at the configured limit.
func (s *curatorService) GetQuizQuestions(ctx context.Context, userID string) (*dto.QuizQuestionsResponse, error) {
	eligibility, err := s.CheckEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, domain.NewForbiddenError(eligibility.Reason)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewQuestionFetchError(err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	if user.TargetLanguageID == "" {
		return nil, domain.NewNoTargetLanguageError()
	}

	questions, err := s.questionRepo.GetRandomActiveByLanguage(ctx, user.TargetLanguageID, s.quizConfig.QuestionLimit)
	if err != nil {
		return nil, domain.NewQuestionFetchError(err)
	}

	resp := &dto.QuizQuestionsResponse{
		Questions: make([]dto.QuizQuestionResponse, len(questions)),
	}
	for i, q := range questions {
		options := make([]dto.QuizOptionResponse, len(q.Options))
		for j, opt := range q.Options {
			options[j] = dto.QuizOptionResponse{Label: opt.Label, Value: opt.Value}
		}
		resp.Questions[i] = dto.QuizQuestionResponse{
			ID:            q.ID,
			Text:          q.Text,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			LanguageID:    q.LanguageID,
		}
	}
	return resp, nil
}

// SubmitAttempt evaluates the score against the pass threshold, records the
// attempt, and promotes passing EXPLORER users to CONTRIBUTOR. The attempt
// insert and the role replacement commit or roll back together.
func (s *curatorService) SubmitAttempt(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("submission body is required")
	}
	if req.TotalQuestions <= 0 {
		return nil, domain.NewError(domain.CodeOutOfRange, "total_questions must be positive", nil)
	}
	if req.Score < 0 || req.Score > req.TotalQuestions {
		return nil, domain.NewError(domain.CodeOutOfRange, "score must be between 0 and total_questions", nil)
	}

	passed, percentage := domain.EvaluateAttempt(req.Score, req.TotalQuestions)

	resultRole := ""
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		attempt := &domain.QuizAttempt{
			UserID: userID,
			Score:  req.Score,
			Passed: passed,
		}
		if err := s.attemptRepo.CreateAttempt(txCtx, attempt); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		if !passed {
			return nil
		}

		// Re-check inside the transaction: a concurrent submission or an
		// out-of-band role change must not be overwritten. Promotion only
		// ever moves EXPLORER to CONTRIBUTOR.
		currentRole, err := s.roleRepo.GetUserRole(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to re-check user role: %w", err)
		}
		if currentRole == nil || currentRole.Name != domain.RoleExplorer {
			logger.Get().Info("Skipping promotion, user no longer EXPLORER",
				zap.String("userID", userID))
			if currentRole != nil {
				resultRole = currentRole.Name
			}
			return nil
		}

		contributorRole, err := s.roleRepo.GetRoleByName(txCtx, domain.RoleContributor)
		if err != nil {
			return fmt.Errorf("failed to resolve CONTRIBUTOR role: %w", err)
		}
		if contributorRole == nil {
			// Missing seed data. The attempt still counts; the promotion
			// is retried by support once the role table is fixed.
			logger.Get().Error("CONTRIBUTOR role missing from roles table, attempt recorded without promotion",
				zap.String("userID", userID))
			resultRole = currentRole.Name
			return nil
		}

		if err := s.roleRepo.ReplaceUserRole(txCtx, userID, contributorRole.ID); err != nil {
			return fmt.Errorf("failed to promote user: %w", err)
		}
		resultRole = contributorRole.Name
		return nil
	})
	if err != nil {
		return nil, domain.NewSubmissionFailedError(err)
	}

	s.invalidateUserViews(ctx, userID)

	if resultRole == "" {
		if role, roleErr := s.roleRepo.GetUserRole(ctx, userID); roleErr == nil && role != nil {
			resultRole = role.Name
		}
	}

	return &dto.QuizResultResponse{
		Passed:     passed,
		Percentage: percentage,
		RoleName:   resultRole,
	}, nil
}

// GetAttemptHistory returns a page of the user's attempt history.
func (s *curatorService) GetAttemptHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}

	attempts, total, err := s.attemptRepo.ListAttemptsByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	items := make([]dto.AttemptResponse, len(attempts))
	for i, a := range attempts {
		items[i] = dto.AttemptResponse{
			ID:        a.ID,
			Score:     a.Score,
			Passed:    a.Passed,
			CreatedAt: a.CreatedAt,
		}
	}
	return &dto.AttemptListResponse{
		Attempts: items,
		Pagination: dto.PaginationInfo{
			TotalItems: total,
			Limit:      pagination.Limit,
			Offset:     pagination.Offset,
		},
	}, nil
}

// invalidateUserViews drops the user's rendered views after a committed
// submission. Invalidation is best effort: a cache failure must not turn a
// successful submission into an error.
func (s *curatorService) invalidateUserViews(ctx context.Context, userID string) {
	if s.cacheClient == nil {
		return
	}
	for _, view := range []string{cache.ViewCuratorTest, cache.ViewHome, cache.ViewProfile} {
		key := cache.ViewKey(view, userID)
		if err := s.cacheClient.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to invalidate view cache",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}
