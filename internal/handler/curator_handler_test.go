package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/handler"
	"neolingo/internal/logger"
	"neolingo/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"})
}

// --- Manual Mocks ---

// MockCuratorService
type MockCuratorService struct {
	CheckEligibilityFunc  func(ctx context.Context, userID string) (*dto.EligibilityResponse, error)
	GetQuizQuestionsFunc  func(ctx context.Context, userID string) (*dto.QuizQuestionsResponse, error)
	SubmitAttemptFunc     func(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error)
	GetAttemptHistoryFunc func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error)
}

func (m *MockCuratorService) CheckEligibility(ctx context.Context, userID string) (*dto.EligibilityResponse, error) {
	if m.CheckEligibilityFunc != nil {
		return m.CheckEligibilityFunc(ctx, userID)
	}
	panic("MockCuratorService.CheckEligibilityFunc not implemented")
}
func (m *MockCuratorService) GetQuizQuestions(ctx context.Context, userID string) (*dto.QuizQuestionsResponse, error) {
	if m.GetQuizQuestionsFunc != nil {
		return m.GetQuizQuestionsFunc(ctx, userID)
	}
	panic("MockCuratorService.GetQuizQuestionsFunc not implemented")
}
func (m *MockCuratorService) SubmitAttempt(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error) {
	if m.SubmitAttemptFunc != nil {
		return m.SubmitAttemptFunc(ctx, userID, req)
	}
	panic("MockCuratorService.SubmitAttemptFunc not implemented")
}
func (m *MockCuratorService) GetAttemptHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error) {
	if m.GetAttemptHistoryFunc != nil {
		return m.GetAttemptHistoryFunc(ctx, userID, pagination)
	}
	panic("MockCuratorService.GetAttemptHistoryFunc not implemented")
}

func newCuratorTestApp(svc *MockCuratorService, userID string) *fiber.App {
	h := handler.NewCuratorHandler(svc)
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	withUser := func(fn fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if userID != "" {
				c.Locals(middleware.UserIDKey, userID)
			}
			return fn(c)
		}
	}
	app.Get("/curator/eligibility", withUser(h.CheckEligibility))
	app.Get("/curator/quiz", withUser(h.GetQuizQuestions))
	app.Post("/curator/attempts", withUser(h.SubmitAttempt))
	app.Get("/curator/attempts", withUser(h.GetAttemptHistory))
	return app
}

func TestCuratorHandler_CheckEligibility(t *testing.T) {
	svc := &MockCuratorService{
		CheckEligibilityFunc: func(ctx context.Context, userID string) (*dto.EligibilityResponse, error) {
			assert.Equal(t, "user1", userID)
			return &dto.EligibilityResponse{Eligible: true, RoleName: domain.RoleExplorer}, nil
		},
	}
	app := newCuratorTestApp(svc, "user1")

	req := httptest.NewRequest("GET", "/curator/eligibility", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.EligibilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Eligible)
	assert.Equal(t, domain.RoleExplorer, body.RoleName)
}

func TestCuratorHandler_CheckEligibility_Unauthenticated(t *testing.T) {
	svc := &MockCuratorService{}
	app := newCuratorTestApp(svc, "")

	req := httptest.NewRequest("GET", "/curator/eligibility", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCuratorHandler_GetQuizQuestions_NoTargetLanguage(t *testing.T) {
	svc := &MockCuratorService{
		GetQuizQuestionsFunc: func(ctx context.Context, userID string) (*dto.QuizQuestionsResponse, error) {
			return nil, domain.NewNoTargetLanguageError()
		},
	}
	app := newCuratorTestApp(svc, "user1")

	req := httptest.NewRequest("GET", "/curator/quiz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodeNoTargetLanguage))
}

func TestCuratorHandler_SubmitAttempt(t *testing.T) {
	svc := &MockCuratorService{
		SubmitAttemptFunc: func(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error) {
			assert.Equal(t, "user1", userID)
			assert.Equal(t, 3, req.Score)
			assert.Equal(t, 4, req.TotalQuestions)
			return &dto.QuizResultResponse{Passed: true, Percentage: 0.75, RoleName: domain.RoleContributor}, nil
		},
	}
	app := newCuratorTestApp(svc, "user1")

	payload, _ := json.Marshal(dto.SubmitAttemptRequest{Score: 3, TotalQuestions: 4})
	req := httptest.NewRequest("POST", "/curator/attempts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QuizResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Passed)
	assert.Equal(t, domain.RoleContributor, body.RoleName)
}

func TestCuratorHandler_SubmitAttempt_ValidationFailure(t *testing.T) {
	svc := &MockCuratorService{}
	app := newCuratorTestApp(svc, "user1")

	payload, _ := json.Marshal(dto.SubmitAttemptRequest{Score: 5, TotalQuestions: 0})
	req := httptest.NewRequest("POST", "/curator/attempts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "total_questions")
}

func TestCuratorHandler_SubmitAttempt_ServiceError(t *testing.T) {
	svc := &MockCuratorService{
		SubmitAttemptFunc: func(ctx context.Context, userID string, req *dto.SubmitAttemptRequest) (*dto.QuizResultResponse, error) {
			return nil, domain.NewSubmissionFailedError(nil)
		},
	}
	app := newCuratorTestApp(svc, "user1")

	payload, _ := json.Marshal(dto.SubmitAttemptRequest{Score: 3, TotalQuestions: 4})
	req := httptest.NewRequest("POST", "/curator/attempts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodeSubmissionFailed))
}

func TestCuratorHandler_GetAttemptHistory_Pagination(t *testing.T) {
	svc := &MockCuratorService{
		GetAttemptHistoryFunc: func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error) {
			assert.Equal(t, 5, pagination.Limit)
			assert.Equal(t, 10, pagination.Offset)
			return &dto.AttemptListResponse{
				Attempts:   []dto.AttemptResponse{},
				Pagination: dto.PaginationInfo{TotalItems: 0, Limit: 5, Offset: 10},
			}, nil
		},
	}
	app := newCuratorTestApp(svc, "user1")

	req := httptest.NewRequest("GET", "/curator/attempts?limit=5&offset=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
