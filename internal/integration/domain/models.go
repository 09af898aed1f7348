// Package domain contains persistence models for storefront connections.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
)

// Integration is one storefront connection for one user. Credential exchange
// with the marketplace happens outside this service; only the token pair is
// stored here.
type Integration struct {
	ID           snowflake.ID         `gorm:"primaryKey" json:"id"`
	UserID       snowflake.ID         `gorm:"column:user_id;not null;index" json:"user_id"`
	Platform     orderdomain.Platform `gorm:"type:text;not null" json:"platform"`
	AccessToken  string               `gorm:"column:access_token;type:text;not null" json:"-"`
	RefreshToken string               `gorm:"column:refresh_token;type:text;not null" json:"-"`
	IsActive     bool                 `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Integration) TableName() string { return "integrations" }
