package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, integration *Integration) error
	ListActive(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Integration, error)
	CountActive(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (int64, error)
}
