package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"neolingo/internal/dto"
	"neolingo/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestLanguage(t *testing.T) string {
	t.Helper()
	languageID := util.NewULID()
	code := "it-" + languageID[20:]
	_, err := db.Exec(`INSERT INTO languages (id, code, name, is_active) VALUES (:1, :2, :3, 1)`,
		languageID, code, "Integration Language "+code)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec(`DELETE FROM quiz_questions WHERE language_id = :1`, languageID)
		db.Exec(`DELETE FROM languages WHERE id = :1`, languageID)
	})
	return languageID
}

func seedTestQuestions(t *testing.T, languageID string, n int) {
	t.Helper()
	now := time.Now()
	for i := 0; i < n; i++ {
		options := fmt.Sprintf(`[{"label":"A","value":"right-%d"},{"label":"B","value":"wrong-%d"}]`, i, i)
		_, err := db.Exec(
			`INSERT INTO quiz_questions (id, language_id, text, options, correct_answer, is_active, created_at, updated_at)
			 VALUES (:1, :2, :3, :4, :5, 1, :6, :7)`,
			util.NewULID(), languageID, fmt.Sprintf("Question %d?", i), options, fmt.Sprintf("right-%d", i), now, now)
		require.NoError(t, err)
	}
}

// registerAndOnboardUser registers a fresh user, completes onboarding for the
// language, and returns the access token. Onboarding assigns EXPLORER.
func registerAndOnboardUser(t *testing.T, languageID string) string {
	t.Helper()
	externalID := "ext-" + util.NewULID()

	payload, _ := json.Marshal(dto.RegisterRequest{
		ExternalID:  externalID,
		Email:       externalID + "@integration.test",
		DisplayName: "Integration User",
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var tokens dto.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	resp.Body.Close()

	onboarding, _ := json.Marshal(dto.OnboardingRequest{LanguageID: languageID})
	req = httptest.NewRequest("POST", "/api/auth/onboarding", bytes.NewReader(onboarding))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()

	return tokens.AccessToken
}

func TestCuratorPromotionFlow(t *testing.T) {
	requireIntegration(t)

	languageID := seedTestLanguage(t)
	seedTestQuestions(t, languageID, 12)
	token := registerAndOnboardUser(t, languageID)

	// Fresh EXPLORER is eligible.
	req := httptest.NewRequest("GET", "/api/curator/eligibility", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var eligibility dto.EligibilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&eligibility))
	resp.Body.Close()
	assert.True(t, eligibility.Eligible)

	// Quiz hands out at most the configured number of questions, each with
	// the correct option value for client-side scoring.
	req = httptest.NewRequest("GET", "/api/curator/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var quiz dto.QuizQuestionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	resp.Body.Close()
	require.NotEmpty(t, quiz.Questions)
	assert.LessOrEqual(t, len(quiz.Questions), cfg.CuratorQuiz.QuestionLimit)
	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.CorrectAnswer)
		assert.Equal(t, languageID, q.LanguageID)
	}

	// A passing score promotes to CONTRIBUTOR.
	payload, _ := json.Marshal(dto.SubmitAttemptRequest{Score: 9, TotalQuestions: 10})
	req = httptest.NewRequest("POST", "/api/curator/attempts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result dto.QuizResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.True(t, result.Passed)
	assert.Equal(t, "CONTRIBUTOR", result.RoleName)

	// Profile reflects the new role.
	req = httptest.NewRequest("GET", "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var profile dto.UserProfileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	resp.Body.Close()
	assert.Equal(t, "CONTRIBUTOR", profile.RoleName)

	// Contributors are no longer eligible for the quiz.
	req = httptest.NewRequest("GET", "/api/curator/eligibility", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&eligibility))
	resp.Body.Close()
	assert.False(t, eligibility.Eligible)
}

func TestCuratorCooldownAfterFailure(t *testing.T) {
	requireIntegration(t)

	languageID := seedTestLanguage(t)
	seedTestQuestions(t, languageID, 10)
	token := registerAndOnboardUser(t, languageID)

	payload, _ := json.Marshal(dto.SubmitAttemptRequest{Score: 2, TotalQuestions: 10})
	req := httptest.NewRequest("POST", "/api/curator/attempts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result dto.QuizResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.False(t, result.Passed)

	// The failed attempt starts the cooldown.
	req = httptest.NewRequest("GET", "/api/curator/eligibility", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var eligibility dto.EligibilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&eligibility))
	resp.Body.Close()
	assert.False(t, eligibility.Eligible)
	require.NotNil(t, eligibility.EligibleAt)
	assert.True(t, eligibility.EligibleAt.After(time.Now()))

	// Taking the quiz during the cooldown is rejected.
	req = httptest.NewRequest("GET", "/api/curator/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	resp.Body.Close()
}
