package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	CurrentUser(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error)
}

type SignUpRequest struct {
	Email    string
	Password string
	Name     string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
}

type UpdateProfileRequest struct {
	Name string
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrSessionExpired     = errors.New("session_expired")
	ErrSessionRevoked     = errors.New("session_revoked")
	ErrInvalidSession     = errors.New("invalid_session")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidName        = errors.New("invalid_name")
)
