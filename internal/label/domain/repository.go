package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, label *Label) error
	ListByOrder(ctx context.Context, db *gorm.DB, userID, orderID snowflake.ID) ([]Label, error)
	CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
	CountByUserSince(ctx context.Context, db *gorm.DB, userID snowflake.ID, since time.Time) (int64, error)
}
