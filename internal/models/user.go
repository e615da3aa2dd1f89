package models

import "time"

// User represents an account persisted in the users table.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;type:varchar(255)"`
	Password  string    `json:"-" gorm:"not null;type:varchar(255)"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserCreate is the request body for creating or replacing a user.
type UserCreate struct {
	Username string `json:"username" form:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserPublic is the representation of a user that is safe to return to any caller.
type UserPublic struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips the password hash and creation time from u.
func (u *User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// PublicUsers converts a slice of users to their public representation.
func PublicUsers(users []User) []UserPublic {
	out := make([]UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
