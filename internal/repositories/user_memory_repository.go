package repositories

import (
	"context"
	"sync"
	"time"

	"fastzero/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Users are kept in insertion order, which is also ID order.
type MemoryUserRepository struct {
	users  []models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		nextID: 1,
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = 0
	if err := uniquenessConflict(r.users, user); err != nil {
		return err
	}

	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

// GetByUsername returns a user by their username.
func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

// GetByEmail returns a user by their email.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if match(&r.users[i]) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// List returns a copy of the requested window of users.
func (r *MemoryUserRepository) List(_ context.Context, page models.FilterPage) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page.Offset >= len(r.users) {
		return []models.User{}, nil
	}
	// Compare against the remaining length so a huge limit cannot overflow.
	end := len(r.users)
	if page.Limit < end-page.Offset {
		end = page.Offset + page.Limit
	}
	out := make([]models.User, end-page.Offset)
	copy(out, r.users[page.Offset:end])
	return out, nil
}

// Update modifies an existing user. Nothing is written when a uniqueness check fails.
func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(user.ID)
	if idx < 0 {
		return ErrUserNotFound
	}
	if uniquenessConflict(r.users, user) != nil {
		return ErrDuplicateUser
	}

	current := &r.users[idx]
	current.Username = user.Username
	current.Email = user.Email
	current.Password = user.Password
	*user = *current
	return nil
}

// Delete removes a user by their ID.
func (r *MemoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrUserNotFound
	}
	r.users = append(r.users[:idx], r.users[idx+1:]...)
	return nil
}

func (r *MemoryUserRepository) indexOf(id uint) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
