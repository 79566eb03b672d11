package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DictionaryService defines the interface for dictionary browsing and the
// community suggestion workflow.
type DictionaryService interface {
	ListLanguages(ctx context.Context) ([]dto.LanguageResponse, error)
	ListWords(ctx context.Context, languageID string, pagination dto.Pagination) (*dto.WordListResponse, error)
	CreateWord(ctx context.Context, req *dto.CreateWordRequest) (*dto.WordResponse, error)
	SuggestTranslation(ctx context.Context, userID, wordID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error)
	ListSuggestions(ctx context.Context, wordID string) (*dto.SuggestionListResponse, error)
	Vote(ctx context.Context, userID, suggestionID string, req *dto.VoteRequest) error
	ReviewSuggestion(ctx context.Context, suggestionID string, req *dto.ReviewRequest) error
}

type dictionaryService struct {
	languageRepo   domain.LanguageRepository
	wordRepo       domain.WordRepository
	suggestionRepo domain.SuggestionRepository
	voteRepo       domain.VoteRepository
	cacheClient    domain.Cache
	cacheConfig    config.CacheConfig
	sfGroup        singleflight.Group
}

// NewDictionaryService creates a new instance of DictionaryService.
func NewDictionaryService(
	languageRepo domain.LanguageRepository,
	wordRepo domain.WordRepository,
	suggestionRepo domain.SuggestionRepository,
	voteRepo domain.VoteRepository,
	cacheClient domain.Cache,
	cacheConfig config.CacheConfig,
) DictionaryService {
	return &dictionaryService{
		languageRepo:   languageRepo,
		wordRepo:       wordRepo,
		suggestionRepo: suggestionRepo,
		voteRepo:       voteRepo,
		cacheClient:    cacheClient,
		cacheConfig:    cacheConfig,
	}
}

// ListLanguages returns the active target languages.
func (s *dictionaryService) ListLanguages(ctx context.Context) ([]dto.LanguageResponse, error) {
	languages, err := s.languageRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list languages", err)
	}

	resp := make([]dto.LanguageResponse, len(languages))
	for i, l := range languages {
		resp[i] = dto.LanguageResponse{ID: l.ID, Code: l.Code, Name: l.Name}
	}
	return resp, nil
}

// ListWords returns a page of dictionary entries for a language. The first
// page is the hot path; it is cached per language and concurrent rebuilds
// collapse through singleflight.
func (s *dictionaryService) ListWords(ctx context.Context, languageID string, pagination dto.Pagination) (*dto.WordListResponse, error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 20
	}

	useCache := s.cacheClient != nil && pagination.Offset == 0
	cacheKey := cache.DictionaryKey(languageID)

	if useCache {
		cached, err := s.cacheClient.Get(ctx, cacheKey)
		if err == nil {
			var resp dto.WordListResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil && resp.Pagination.Limit == pagination.Limit {
				return &resp, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Dictionary cache read failed",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}

	if !useCache {
		return s.listWordsFromRepo(ctx, languageID, pagination)
	}

	sfKey := fmt.Sprintf("%s:%d", cacheKey, pagination.Limit)
	result, err, _ := s.sfGroup.Do(sfKey, func() (interface{}, error) {
		resp, err := s.listWordsFromRepo(ctx, languageID, pagination)
		if err != nil {
			return nil, err
		}
		if encoded, jsonErr := json.Marshal(resp); jsonErr == nil {
			if cacheErr := s.cacheClient.Set(ctx, cacheKey, string(encoded), s.cacheConfig.DictionaryTTL); cacheErr != nil {
				logger.Get().Warn("Dictionary cache write failed",
					zap.String("key", cacheKey), zap.Error(cacheErr))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	resp, ok := result.(*dto.WordListResponse)
	if !ok {
		return nil, domain.NewInternalError("unexpected dictionary result type", nil)
	}
	return resp, nil
}

func (s *dictionaryService) listWordsFromRepo(ctx context.Context, languageID string, pagination dto.Pagination) (*dto.WordListResponse, error) {
	language, err := s.languageRepo.GetByID(ctx, languageID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up language", err)
	}
	if language == nil {
		return nil, domain.NewLanguageNotFoundError(languageID)
	}

	words, total, err := s.wordRepo.ListByLanguage(ctx, languageID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list words", err)
	}

	items := make([]dto.WordResponse, len(words))
	for i, w := range words {
		suggestions, err := s.suggestionRepo.ListByWord(ctx, w.ID)
		if err != nil {
			return nil, domain.NewInternalError("failed to list word translations", err)
		}
		var translations []string
		for _, sg := range suggestions {
			if sg.Status == domain.SuggestionApproved {
				translations = append(translations, sg.Text)
			}
		}
		items[i] = dto.WordResponse{
			ID:           w.ID,
			LanguageID:   w.LanguageID,
			Lemma:        w.Lemma,
			Gloss:        w.Gloss,
			Translations: translations,
		}
	}
	return &dto.WordListResponse{
		Words: items,
		Pagination: dto.PaginationInfo{
			TotalItems: total,
			Limit:      pagination.Limit,
			Offset:     pagination.Offset,
		},
	}, nil
}

// CreateWord adds a curated dictionary entry and drops the language's cached
// word list.
func (s *dictionaryService) CreateWord(ctx context.Context, req *dto.CreateWordRequest) (*dto.WordResponse, error) {
	language, err := s.languageRepo.GetByID(ctx, req.LanguageID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up language", err)
	}
	if language == nil {
		return nil, domain.NewLanguageNotFoundError(req.LanguageID)
	}

	word := &domain.Word{
		LanguageID: req.LanguageID,
		Lemma:      req.Lemma,
		Gloss:      req.Gloss,
	}
	if err := s.wordRepo.CreateWord(ctx, word); err != nil {
		return nil, domain.NewInternalError("failed to create word", err)
	}

	s.invalidateDictionary(ctx, req.LanguageID)

	return &dto.WordResponse{
		ID:         word.ID,
		LanguageID: word.LanguageID,
		Lemma:      word.Lemma,
		Gloss:      word.Gloss,
	}, nil
}

// SuggestTranslation records a user's proposed translation for a word.
func (s *dictionaryService) SuggestTranslation(ctx context.Context, userID, wordID string, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error) {
	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up word", err)
	}
	if word == nil {
		return nil, domain.NewError(domain.CodeWordNotFound, fmt.Sprintf("word not found: %s", wordID), nil)
	}

	suggestion := &domain.Suggestion{
		WordID: wordID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := suggestion.Validate(); err != nil {
		return nil, err
	}
	if err := s.suggestionRepo.CreateSuggestion(ctx, suggestion); err != nil {
		return nil, domain.NewInternalError("failed to create suggestion", err)
	}

	return &dto.SuggestionResponse{
		ID:        suggestion.ID,
		WordID:    suggestion.WordID,
		Text:      suggestion.Text,
		Status:    string(suggestion.Status),
		CreatedAt: suggestion.CreatedAt,
	}, nil
}

// ListSuggestions returns a word's suggestions with their vote tallies.
func (s *dictionaryService) ListSuggestions(ctx context.Context, wordID string) (*dto.SuggestionListResponse, error) {
	suggestions, err := s.suggestionRepo.ListByWord(ctx, wordID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list suggestions", err)
	}

	items := make([]dto.SuggestionResponse, len(suggestions))
	for i, sg := range suggestions {
		up, down, err := s.voteRepo.CountForSuggestion(ctx, sg.ID)
		if err != nil {
			return nil, domain.NewInternalError("failed to count votes", err)
		}
		items[i] = dto.SuggestionResponse{
			ID:        sg.ID,
			WordID:    sg.WordID,
			Text:      sg.Text,
			Status:    string(sg.Status),
			UpVotes:   up,
			DownVotes: down,
			CreatedAt: sg.CreatedAt,
		}
	}
	return &dto.SuggestionListResponse{Suggestions: items}, nil
}

// Vote records or updates the user's vote on a suggestion.
func (s *dictionaryService) Vote(ctx context.Context, userID, suggestionID string, req *dto.VoteRequest) error {
	if req.Value != 1 && req.Value != -1 {
		return domain.NewError(domain.CodeOutOfRange, "vote value must be 1 or -1", nil)
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return domain.NewInternalError("failed to look up suggestion", err)
	}
	if suggestion == nil {
		return domain.NewError(domain.CodeSuggestionNotFound, fmt.Sprintf("suggestion not found: %s", suggestionID), nil)
	}

	vote := &domain.Vote{
		SuggestionID: suggestionID,
		UserID:       userID,
		Value:        req.Value,
	}
	if err := s.voteRepo.UpsertVote(ctx, vote); err != nil {
		return domain.NewInternalError("failed to record vote", err)
	}
	return nil
}

// ReviewSuggestion moves a suggestion to APPROVED or REJECTED. Curator roles
// are enforced at the route level.
func (s *dictionaryService) ReviewSuggestion(ctx context.Context, suggestionID string, req *dto.ReviewRequest) error {
	status := domain.SuggestionStatus(req.Status)
	if status != domain.SuggestionApproved && status != domain.SuggestionRejected {
		return domain.NewInvalidInputError("status must be APPROVED or REJECTED")
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return domain.NewInternalError("failed to look up suggestion", err)
	}
	if suggestion == nil {
		return domain.NewError(domain.CodeSuggestionNotFound, fmt.Sprintf("suggestion not found: %s", suggestionID), nil)
	}

	if err := s.suggestionRepo.UpdateStatus(ctx, suggestionID, status); err != nil {
		return domain.NewInternalError("failed to update suggestion status", err)
	}

	// An approved suggestion changes what the dictionary view should show.
	if status == domain.SuggestionApproved {
		if word, wordErr := s.wordRepo.GetByID(ctx, suggestion.WordID); wordErr == nil && word != nil {
			s.invalidateDictionary(ctx, word.LanguageID)
		}
	}
	return nil
}

func (s *dictionaryService) invalidateDictionary(ctx context.Context, languageID string) {
	if s.cacheClient == nil {
		return
	}
	key := cache.DictionaryKey(languageID)
	if err := s.cacheClient.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate dictionary cache",
			zap.String("key", key), zap.Error(err))
	}
}
