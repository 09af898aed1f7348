package domain

import (
	"context"
	"errors"

	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
)

type Service interface {
	ListActive(ctx context.Context) ([]Integration, error)
	Create(ctx context.Context, req CreateRequest) (*Integration, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Platform     orderdomain.Platform `json:"platform"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

var (
	ErrInvalidUser              = errors.New("invalid_user")
	ErrInvalidID                = errors.New("invalid_id")
	ErrInvalidPlatform          = errors.New("invalid_platform")
	ErrInvalidCredentials       = errors.New("invalid_integration_credentials")
	ErrNotFound                 = errors.New("not_found")
	ErrIntegrationLimitExceeded = errors.New("integration_limit_exceeded")
)
