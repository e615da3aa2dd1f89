package services

import (
	"context"
	"errors"
	"fmt"

	"fastzero/internal/models"
	"fastzero/internal/repositories"
)

// AuthService handles login and resolution of the caller behind a bearer token.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login authenticates email and password and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &models.Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// CurrentUser resolves the user a token was issued to. An invalid token and a subject with
// no matching user both yield ErrUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	email, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return user, nil
}
