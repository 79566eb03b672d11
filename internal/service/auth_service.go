package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"
	"neolingo/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrUserExists      = errors.New("user already registered")
)

// AuthService defines the interface for authentication operations. Identity
// verification happens upstream; this service maps a verified external
// identity onto a local user and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, externalID string) (*dto.TokenResponse, error)
	CompleteOnboarding(ctx context.Context, userID string, req *dto.OnboardingRequest) error
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	roleRepo     domain.RoleRepository
	languageRepo domain.LanguageRepository
	txManager    domain.TransactionManager
	cacheClient  domain.Cache
	jwtConfig    config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	languageRepo domain.LanguageRepository,
	txManager domain.TransactionManager,
	cacheClient domain.Cache,
	jwtConfig config.JWTConfig,
) (AuthService, error) {
	if len(jwtConfig.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		languageRepo: languageRepo,
		txManager:    txManager,
		cacheClient:  cacheClient,
		jwtConfig:    jwtConfig,
	}, nil
}

// Register creates a local user for a verified external identity and issues
// a token pair. New users start without a role until onboarding completes.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	user := domain.NewUser(req.ExternalID, req.Email)
	user.DisplayName = req.DisplayName
	if err := user.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByExternalID(ctx, req.ExternalID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}
	logger.Get().Info("New user registered",
		zap.String("userID", user.ID),
		zap.String("email", user.Email))

	return s.issueTokenPair(ctx, user.ID)
}

// Login issues a fresh token pair for an existing user.
func (s *authServiceImpl) Login(ctx context.Context, externalID string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	return s.issueTokenPair(ctx, user.ID)
}

// CompleteOnboarding records the user's target language choice and assigns
// the EXPLORER starter role. Language choice and role assignment commit
// together.
func (s *authServiceImpl) CompleteOnboarding(ctx context.Context, userID string, req *dto.OnboardingRequest) error {
	language, err := s.languageRepo.GetByID(ctx, req.LanguageID)
	if err != nil {
		return domain.NewInternalError("failed to look up language", err)
	}
	if language == nil || !language.IsActive {
		return domain.NewLanguageNotFoundError(req.LanguageID)
	}

	explorerRole, err := s.roleRepo.GetRoleByName(ctx, domain.RoleExplorer)
	if err != nil {
		return domain.NewInternalError("failed to resolve EXPLORER role", err)
	}
	if explorerRole == nil {
		logger.Get().Error("EXPLORER role missing from roles table",
			zap.String("userID", userID))
		return domain.NewInternalError("starter role is not configured", nil)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.SetTargetLanguage(txCtx, userID, language.ID); err != nil {
			return fmt.Errorf("failed to set target language: %w", err)
		}
		if err := s.roleRepo.ReplaceUserRole(txCtx, userID, explorerRole.ID); err != nil {
			return fmt.Errorf("failed to assign starter role: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.NewInternalError("failed to complete onboarding", err)
	}

	// The profile and curator views embed the target language and role.
	for _, view := range []string{cache.ViewProfile, cache.ViewCuratorTest} {
		key := cache.ViewKey(view, userID)
		if cacheErr := s.cacheClient.Delete(ctx, key); cacheErr != nil {
			logger.Get().Warn("Failed to invalidate view cache after onboarding",
				zap.String("key", key), zap.Error(cacheErr))
		}
	}
	return nil
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, userID string) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(ctx, userID, s.jwtConfig.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.CreateJWT(ctx, userID, s.jwtConfig.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, errors.New("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		logger.Get().Error("User not found for refresh token",
			zap.String("userID", claims.UserID), zap.Error(err))
		return nil, domain.NewNotFoundError("user not found for refresh token")
	}

	return s.issueTokenPair(ctx, user.ID)
}
