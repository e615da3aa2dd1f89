package models

// LoginRequest is the OAuth2 password form. Username carries the account email.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}
