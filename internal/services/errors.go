package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not allowed")
)
