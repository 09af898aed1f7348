package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/etiquetou/etiquetou/internal/integration/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, integration *domain.Integration) error {
	return db.WithContext(ctx).Create(integration).Error
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Integration, error) {
	var integrations []domain.Integration
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc, id desc").
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

func (r *repo) CountActive(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Integration{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Integration{})
	return result.RowsAffected, result.Error
}
