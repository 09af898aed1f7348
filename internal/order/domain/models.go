// Package domain contains persistence models for imported storefront orders.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status represents lifecycle states for an order.
// pending -> printed happens only through a batch print; printed -> shipped
// is driven by carrier tracking events.
type Status string

const (
	StatusPending Status = "pending"
	StatusPrinted Status = "printed"
	StatusShipped Status = "shipped"
)

// Platform identifies the storefront an order was imported from.
type Platform string

const (
	PlatformMercadoLivre Platform = "mercadolivre"
	PlatformShopee       Platform = "shopee"
	PlatformTikTok       Platform = "tiktok"
)

// ShippingMethod identifies the carrier used for the shipment.
type ShippingMethod string

const (
	ShippingCorreios ShippingMethod = "correios"
	ShippingLoggi    ShippingMethod = "loggi"
	ShippingJadlog   ShippingMethod = "jadlog"
	ShippingAzul     ShippingMethod = "azul"
	ShippingOther    ShippingMethod = "other"
)

// Product is a line item nested inside an order. It has no identity of its own.
type Product struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// Order captures one storefront order awaiting a shipping label.
type Order struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID          snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	Platform        Platform     `gorm:"type:text;not null" json:"platform"`
	PlatformOrderID string       `gorm:"column:platform_order_id;type:text;not null" json:"platform_order_id"`
	Status          Status       `gorm:"type:text;not null;index" json:"status"`

	CustomerName  string  `gorm:"type:text;not null" json:"customer_name"`
	CustomerPhone *string `gorm:"type:text" json:"customer_phone,omitempty"`
	CustomerEmail *string `gorm:"type:text" json:"customer_email,omitempty"`

	AddressStreet       string  `gorm:"type:text;not null" json:"address_street"`
	AddressNumber       *string `gorm:"type:text" json:"address_number,omitempty"`
	AddressComplement   *string `gorm:"type:text" json:"address_complement,omitempty"`
	AddressNeighborhood string  `gorm:"type:text;not null" json:"address_neighborhood"`
	AddressCity         string  `gorm:"type:text;not null" json:"address_city"`
	AddressState        string  `gorm:"type:text;not null" json:"address_state"`
	AddressZipcode      string  `gorm:"type:text;not null" json:"address_zipcode"`

	ShippingMethod ShippingMethod `gorm:"type:text;not null" json:"shipping_method"`
	TrackingCode   *string        `gorm:"type:text" json:"tracking_code,omitempty"`

	Products datatypes.JSONSlice[Product] `gorm:"type:jsonb" json:"products"`

	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	PrintedAt *time.Time `gorm:"column:printed_at" json:"printed_at,omitempty"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// ValidPlatform reports whether p is one of the supported storefronts.
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformMercadoLivre, PlatformShopee, PlatformTikTok:
		return true
	default:
		return false
	}
}

// ValidShippingMethod reports whether m is a supported carrier.
func ValidShippingMethod(m ShippingMethod) bool {
	switch m {
	case ShippingCorreios, ShippingLoggi, ShippingJadlog, ShippingAzul, ShippingOther:
		return true
	default:
		return false
	}
}
