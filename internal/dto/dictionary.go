package dto

import "time"

// LanguageResponse represents a target language in the API response.
// @Description Target language information
type LanguageResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// WordResponse represents a dictionary entry in the API response.
// Translations carries the approved community suggestions for the word.
type WordResponse struct {
	ID           string   `json:"id"`
	LanguageID   string   `json:"language_id"`
	Lemma        string   `json:"lemma"`
	Gloss        string   `json:"gloss"`
	Translations []string `json:"translations,omitempty"`
}

// WordListResponse is a page of dictionary entries.
type WordListResponse struct {
	Words      []WordResponse `json:"words"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateWordRequest represents the request body for adding a dictionary entry.
// @Description Request body for creating a word (curators and admins)
type CreateWordRequest struct {
	LanguageID string `json:"language_id" validate:"required"`
	Lemma      string `json:"lemma" validate:"required"`
	Gloss      string `json:"gloss" validate:"required"`
}

// SuggestionRequest represents a proposed translation for a word.
// @Description Request body for suggesting a translation
type SuggestionRequest struct {
	Text string `json:"text" validate:"required,max=200"`
}

// SuggestionResponse represents a suggestion with its vote tally.
type SuggestionResponse struct {
	ID        string    `json:"id"`
	WordID    string    `json:"word_id"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	UpVotes   int       `json:"up_votes"`
	DownVotes int       `json:"down_votes"`
	CreatedAt time.Time `json:"created_at"`
}

// SuggestionListResponse lists suggestions for a word.
type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// VoteRequest represents an up or down vote on a suggestion.
// @Description Request body for voting on a suggestion
type VoteRequest struct {
	Value int `json:"value" validate:"required,oneof=1 -1"`
}

// ReviewRequest moves a suggestion through curator review.
// @Description Request body for approving or rejecting a suggestion
type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}
