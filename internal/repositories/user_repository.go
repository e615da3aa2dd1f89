package repositories

import (
	"context"

	"fastzero/internal/models"
)

// UserRepository defines the interface for user data access.
//
// Implementations keep username and email unique. Create reports ErrUsernameTaken before
// ErrEmailTaken when both collide. Update is atomic: either every field is written or none is.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page models.FilterPage) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}
