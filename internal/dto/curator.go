package dto

import "time"

// EligibilityResponse tells a user whether they may take the curator quiz.
// @Description Curator quiz eligibility check result
type EligibilityResponse struct {
	Eligible   bool       `json:"eligible"`
	Reason     string     `json:"reason,omitempty"`      // set when not eligible
	EligibleAt *time.Time `json:"eligible_at,omitempty"` // set when a cooldown is active
	RoleName   string     `json:"role_name"`
}

// QuizOptionResponse is one answer choice.
type QuizOptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuizQuestionResponse represents a quiz question in the API response. The
// client scores answers locally, so the correct option value ships with the
// question.
// @Description Curator quiz question
type QuizQuestionResponse struct {
	ID            string               `json:"id"`
	Text          string               `json:"text"`
	Options       []QuizOptionResponse `json:"options"`
	CorrectAnswer string               `json:"correct_answer"`
	LanguageID    string               `json:"language_id"`
}

// QuizQuestionsResponse is the question set served for one quiz sitting.
type QuizQuestionsResponse struct {
	Questions []QuizQuestionResponse `json:"questions"`
}

// SubmitAttemptRequest represents a scored quiz submission.
// @Description Request body for submitting a curator quiz attempt
type SubmitAttemptRequest struct {
	Score          int `json:"score" validate:"min=0"`
	TotalQuestions int `json:"total_questions" validate:"required,min=1"`
}

// QuizResultResponse represents the outcome of a quiz submission.
// @Description Curator quiz attempt result
type QuizResultResponse struct {
	Passed     bool    `json:"passed"`
	Percentage float64 `json:"percentage"`
	RoleName   string  `json:"role_name"`
}

// AttemptResponse is one row of a user's attempt history.
type AttemptResponse struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Passed    bool      `json:"passed"`
	CreatedAt time.Time `json:"created_at"`
}

// AttemptListResponse is a page of attempt history.
type AttemptListResponse struct {
	Attempts   []AttemptResponse `json:"attempts"`
	Pagination PaginationInfo    `json:"pagination"`
}
