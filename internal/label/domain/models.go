// Package domain contains persistence models for rendered shipping labels.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Format is the label page format.
type Format string

const (
	Format10x15 Format = "10x15"
	FormatA4    Format = "A4"
)

// Label links an order to one rendered document. Records are append-only;
// reprinting an order creates a new label.
type Label struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	OrderID   snowflake.ID `gorm:"column:order_id;not null;index" json:"order_id"`
	PDFURL    string       `gorm:"column:pdf_url;type:text;not null" json:"pdf_url"`
	Format    Format       `gorm:"type:text;not null" json:"format"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Label) TableName() string { return "labels" }

// ValidFormat reports whether f is a supported page format.
func ValidFormat(f Format) bool {
	return f == Format10x15 || f == FormatA4
}
