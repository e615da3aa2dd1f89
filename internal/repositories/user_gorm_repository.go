package repositories

import (
	"context"
	"errors"
	"fmt"

	"fastzero/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create checks username and email uniqueness and inserts the user.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	var existing []models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", user.Username).
		Or("email = ?", user.Email).
		Find(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if conflict := uniquenessConflict(existing, user); conflict != nil {
		return conflict
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// A concurrent insert can still win the race between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user where %s: %w", query, err)
	}
	return &user, nil
}

// List returns a window of users in primary key order.
func (r *GORMUserRepository) List(ctx context.Context, page models.FilterPage) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update overwrites username, email and password of an existing user inside a transaction.
// Any failure while writing rolls the transaction back and is reported as ErrDuplicateUser.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.User
		if err := tx.First(&current, "id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load user %d for update: %w", user.ID, err)
		}

		current.Username = user.Username
		current.Email = user.Email
		current.Password = user.Password
		if err := tx.Save(&current).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDuplicateUser, err)
		}

		*user = current
		return nil
	})
}

// Delete deletes a user by their ID from the database.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// uniquenessConflict returns the error for the first colliding field of candidate among
// existing rows, username first.
func uniquenessConflict(existing []models.User, candidate *models.User) error {
	for _, u := range existing {
		if u.ID != candidate.ID && u.Username == candidate.Username {
			return ErrUsernameTaken
		}
	}
	for _, u := range existing {
		if u.ID != candidate.ID && u.Email == candidate.Email {
			return ErrEmailTaken
		}
	}
	return nil
}
