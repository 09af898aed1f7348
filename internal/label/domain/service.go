package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Label, error)
	ListByOrder(ctx context.Context, orderID string) ([]Label, error)
}

type CreateRequest struct {
	OrderID string `json:"order_id"`
	Format  Format `json:"format"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidFormat      = errors.New("invalid_format")
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrLabelQuotaExceeded = errors.New("label_quota_exceeded")
)
