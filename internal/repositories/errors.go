package repositories

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	// ErrDuplicateUser is returned when a write fails at commit time. Username and email
	// violations cannot be told apart at that point.
	ErrDuplicateUser = errors.New("username or email already exists")
)

// IsConflict reports whether err is one of the uniqueness errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrDuplicateUser)
}
