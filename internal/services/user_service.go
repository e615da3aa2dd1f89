package services

import (
	"context"
	"fmt"

	"fastzero/internal/models"
	"fastzero/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	userRepo repositories.UserRepository
	hasher   *PasswordHasher
	events   EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, hasher *PasswordHasher, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		events:   events,
	}
}

// CreateUser hashes the password and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(s.events, EventUserCreated, userEventPayload(user.Public()))
	return user, nil
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns one page of users in ID order.
func (s *UserService) ListUsers(ctx context.Context, page models.FilterPage) ([]models.User, error) {
	return s.userRepo.List(ctx, page)
}

// UpdateUser replaces username, email and password of user id on behalf of current.
// Ownership is checked before existence, so a foreign id yields ErrForbidden even when
// no such user exists. The password is always re-hashed.
func (s *UserService) UpdateUser(ctx context.Context, current *models.User, id uint, in models.UserCreate) (*models.User, error) {
	if current == nil || current.ID != id {
		return nil, ErrForbidden
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       id,
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	publish(s.events, EventUserUpdated, userEventPayload(user.Public()))
	return user, nil
}

// DeleteUser removes user id on behalf of current, with the same ownership rule as UpdateUser.
func (s *UserService) DeleteUser(ctx context.Context, current *models.User, id uint) error {
	if current == nil || current.ID != id {
		return ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	publish(s.events, EventUserDeleted, map[string]interface{}{"id": id})
	return nil
}
