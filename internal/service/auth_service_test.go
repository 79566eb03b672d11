package service

import (
	"context"
	"testing"
	"time"

	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/domain"
	"neolingo/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-secret-key-which-is-long-enough",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

type authMocks struct {
	userRepo     *MockUserRepository
	roleRepo     *MockRoleRepository
	languageRepo *MockLanguageRepository
	txManager    *MockTransactionManager
	cache        *MockCache
}

func newAuthService(t *testing.T) (AuthService, *authMocks) {
	m := &authMocks{
		userRepo:     new(MockUserRepository),
		roleRepo:     new(MockRoleRepository),
		languageRepo: new(MockLanguageRepository),
		txManager:    new(MockTransactionManager),
		cache:        new(MockCache),
	}
	svc, err := NewAuthService(m.userRepo, m.roleRepo, m.languageRepo, m.txManager, m.cache, testJWTConfig())
	require.NoError(t, err)
	return svc, m
}

func TestNewAuthService_MissingSecret(t *testing.T) {
	_, err := NewAuthService(new(MockUserRepository), new(MockRoleRepository), new(MockLanguageRepository), new(MockTransactionManager), new(MockCache), config.JWTConfig{})
	assert.Error(t, err)
}

func TestAuthService_CreateAndValidateJWT(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := svc.CreateJWT(context.Background(), "user1", 15*time.Minute, tokenTypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, "user1", claims.Subject)
}

func TestAuthService_ValidateJWT_Garbage(t *testing.T) {
	svc, _ := newAuthService(t)

	claims, err := svc.ValidateJWT(context.Background(), "not-a-token")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newAuthService(t)

	m.userRepo.On("GetUserByExternalID", mock.Anything, "ext1").Return(nil, nil)
	m.userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ExternalID == "ext1" && u.Email == "new@example.com"
	})).Return(nil)

	tokens, err := svc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "ext1",
		Email:      "new@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	m.userRepo.AssertExpectations(t)
}

func TestAuthService_Register_AlreadyExists(t *testing.T) {
	svc, m := newAuthService(t)

	existing := &domain.User{ID: "user1", ExternalID: "ext1", Email: "old@example.com"}
	m.userRepo.On("GetUserByExternalID", mock.Anything, "ext1").Return(existing, nil)

	tokens, err := svc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "ext1",
		Email:      "new@example.com",
	})

	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, ErrUserExists)
	m.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_Login_NotFound(t *testing.T) {
	svc, m := newAuthService(t)

	m.userRepo.On("GetUserByExternalID", mock.Anything, "ghost").Return(nil, nil)

	tokens, err := svc.Login(context.Background(), "ghost")

	assert.Nil(t, tokens)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestAuthService_CompleteOnboarding_Success(t *testing.T) {
	svc, m := newAuthService(t)

	language := &domain.Language{ID: "lang1", Code: "nv", Name: "Novian", IsActive: true}
	m.languageRepo.On("GetByID", mock.Anything, "lang1").Return(language, nil)
	m.roleRepo.On("GetRoleByName", mock.Anything, domain.RoleExplorer).Return(explorerRole(), nil)
	m.txManager.On("WithTransaction", mock.Anything).Return(nil)
	m.userRepo.On("SetTargetLanguage", mock.Anything, "user1", "lang1").Return(nil)
	m.roleRepo.On("ReplaceUserRole", mock.Anything, "user1", "role-explorer").Return(nil)
	m.cache.On("Delete", mock.Anything, cache.ViewKey(cache.ViewProfile, "user1")).Return(nil)
	m.cache.On("Delete", mock.Anything, cache.ViewKey(cache.ViewCuratorTest, "user1")).Return(nil)

	err := svc.CompleteOnboarding(context.Background(), "user1", &dto.OnboardingRequest{LanguageID: "lang1"})

	require.NoError(t, err)
	m.userRepo.AssertExpectations(t)
	m.roleRepo.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestAuthService_CompleteOnboarding_InactiveLanguage(t *testing.T) {
	svc, m := newAuthService(t)

	language := &domain.Language{ID: "lang1", IsActive: false}
	m.languageRepo.On("GetByID", mock.Anything, "lang1").Return(language, nil)

	err := svc.CompleteOnboarding(context.Background(), "user1", &dto.OnboardingRequest{LanguageID: "lang1"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLanguageNotFound, domainErr.Code)
	m.roleRepo.AssertNotCalled(t, "ReplaceUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, m := newAuthService(t)

	refreshToken, err := svc.CreateJWT(context.Background(), "user1", time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	user := &domain.User{ID: "user1", Email: "u@example.com"}
	m.userRepo.On("GetUserByID", mock.Anything, "user1").Return(user, nil)

	tokens, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_RefreshToken_WrongType(t *testing.T) {
	svc, _ := newAuthService(t)

	accessToken, err := svc.CreateJWT(context.Background(), "user1", time.Hour, tokenTypeAccess)
	require.NoError(t, err)

	tokens, err := svc.RefreshToken(context.Background(), accessToken)

	assert.Nil(t, tokens)
	assert.Error(t, err)
}
