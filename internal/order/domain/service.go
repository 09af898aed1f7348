package domain

import (
	"context"
	"errors"

	"github.com/etiquetou/etiquetou/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Update(ctx context.Context, req UpdateRequest) (*Order, error)
	MarkPrinted(ctx context.Context, req MarkPrintedRequest) (*MarkPrintedResponse, error)
	Stats(ctx context.Context) (*StatsResponse, error)
}

type ListRequest struct {
	Status string
	Paging pagination.Pagination
}

type ListResponse struct {
	Orders   []Order              `json:"orders"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type CreateRequest struct {
	Platform        Platform       `json:"platform"`
	PlatformOrderID string         `json:"platform_order_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   *string        `json:"customer_phone"`
	CustomerEmail   *string        `json:"customer_email"`
	Street          string         `json:"address_street"`
	Number          *string        `json:"address_number"`
	Complement      *string        `json:"address_complement"`
	Neighborhood    string         `json:"address_neighborhood"`
	City            string         `json:"address_city"`
	State           string         `json:"address_state"`
	Zipcode         string         `json:"address_zipcode"`
	ShippingMethod  ShippingMethod `json:"shipping_method"`
	TrackingCode    *string        `json:"tracking_code"`
	Products        []Product      `json:"products"`
}

type UpdateRequest struct {
	ID            string
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email"`
	TrackingCode  *string `json:"tracking_code"`
	Status        *Status `json:"status"`
}

type MarkPrintedRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// FailedOrder reports one batch member that did not transition.
type FailedOrder struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type MarkPrintedResponse struct {
	Updated []Order       `json:"updated"`
	Failed  []FailedOrder `json:"failed"`
}

// StatsResponse is a best-effort snapshot: order counts and the label count
// come from two separate reads and may straddle concurrent writes.
type StatsResponse struct {
	TotalOrders int64 `json:"totalOrders"`
	Pending     int64 `json:"pending"`
	Printed     int64 `json:"printed"`
	Shipped     int64 `json:"shipped"`
	TotalLabels int64 `json:"totalLabels"`
}

var (
	ErrInvalidUser           = errors.New("invalid_user")
	ErrInvalidID             = errors.New("invalid_id")
	ErrNotFound              = errors.New("not_found")
	ErrInvalidPlatform       = errors.New("invalid_platform")
	ErrInvalidPlatformOrder  = errors.New("invalid_platform_order_id")
	ErrInvalidCustomerName   = errors.New("invalid_customer_name")
	ErrInvalidAddress        = errors.New("invalid_address")
	ErrInvalidShippingMethod = errors.New("invalid_shipping_method")
	ErrInvalidProducts       = errors.New("invalid_products")
	ErrInvalidStatus         = errors.New("invalid_status")
	ErrInvalidPageToken      = errors.New("invalid_page_token")
	ErrInvalidTransition     = errors.New("invalid_status_transition")
	ErrBatchLimitExceeded    = errors.New("batch_limit_exceeded")
)
