package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/etiquetou/etiquetou/internal/label/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, label *domain.Label) error {
	return db.WithContext(ctx).Create(label).Error
}

func (r *repo) ListByOrder(ctx context.Context, db *gorm.DB, userID, orderID snowflake.ID) ([]domain.Label, error) {
	var labels []domain.Label
	err := db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Order("created_at desc, id desc").
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repo) CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Label{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repo) CountByUserSince(ctx context.Context, db *gorm.DB, userID snowflake.ID, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Label{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
