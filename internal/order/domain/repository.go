package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status

	// Cursor position of the previous page's last row. Zero values mean the
	// first page. Limit bounds the page; 0 means no bound.
	AfterCreatedAt time.Time
	AfterID        snowflake.ID
	Limit          int
}

// Repository is the ownership-scoped store gateway for orders. Every read and
// write carries the owning user ID; there is no unscoped access path.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListFilter) ([]Order, error)
	ListByIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID, ids []snowflake.ID) ([]Order, error)
	UpdateFields(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, fields map[string]any) (int64, error)
	// MarkPrinted applies pending -> printed for one owned order and reports
	// whether a row actually transitioned.
	MarkPrinted(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, now time.Time) (bool, error)
	CountByStatus(ctx context.Context, db *gorm.DB, userID snowflake.ID) (map[Status]int64, error)
}
