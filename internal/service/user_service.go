package service

import (
	"context"
	"encoding/json"
	"errors"

	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/logger"

	"go.uber.org/zap"
)

var ErrUserProfileNotFound = errors.New("user profile not found")

// UserService defines the interface for user-related operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	roleRepo     domain.RoleRepository
	languageRepo domain.LanguageRepository
	cacheClient  domain.Cache
	cacheConfig  config.CacheConfig
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	languageRepo domain.LanguageRepository,
	cacheClient domain.Cache,
	cacheConfig config.CacheConfig,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		languageRepo: languageRepo,
		cacheClient:  cacheClient,
		cacheConfig:  cacheConfig,
	}
}

// GetUserProfile assembles the user's profile view: identity, active role,
// and target language. The rendered view is cached per user and dropped by
// the attempt processor after a role change.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	cacheKey := cache.ViewKey(cache.ViewProfile, userID)

	if s.cacheClient != nil {
		cached, err := s.cacheClient.Get(ctx, cacheKey)
		if err == nil {
			var resp dto.UserProfileResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Profile cache read failed",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, ErrUserProfileNotFound
	}

	resp := &dto.UserProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}

	role, err := s.roleRepo.GetUserRole(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to resolve user role", err)
	}
	if role != nil {
		resp.RoleName = role.Name
	}

	if user.TargetLanguageID != "" {
		language, err := s.languageRepo.GetByID(ctx, user.TargetLanguageID)
		if err != nil {
			return nil, domain.NewInternalError("failed to resolve target language", err)
		}
		if language != nil {
			resp.TargetLanguage = language.Name
		}
	}

	if s.cacheClient != nil {
		if encoded, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.cacheClient.Set(ctx, cacheKey, string(encoded), s.cacheConfig.ProfileTTL); err != nil {
				logger.Get().Warn("Profile cache write failed",
					zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return resp, nil
}

// UpdateDisplayName changes the user's display name and drops the cached
// profile view.
func (s *userServiceImpl) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return ErrUserProfileNotFound
	}

	user.DisplayName = displayName
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.NewInternalError("failed to update user", err)
	}

	if s.cacheClient != nil {
		key := cache.ViewKey(cache.ViewProfile, userID)
		if err := s.cacheClient.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to invalidate profile cache",
				zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
