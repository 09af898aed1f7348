package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/etiquetou/etiquetou/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListFilter) ([]domain.Order, error) {
	var orders []domain.Order
	stmt := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ?", userID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if !filter.AfterCreatedAt.IsZero() {
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)",
			filter.AfterCreatedAt, filter.AfterCreatedAt, filter.AfterID)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListByIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID, ids []snowflake.ID) ([]domain.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []domain.Order
	err := db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, fields map[string]any) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repo) MarkPrinted(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, now time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ? AND id = ? AND status = ?", userID, id, domain.StatusPending).
		Updates(map[string]any{
			"status":     domain.StatusPrinted,
			"printed_at": now,
			"updated_at": now,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, userID snowflake.ID) (map[domain.Status]int64, error) {
	type statusCount struct {
		Status domain.Status
		Count  int64
	}
	var rows []statusCount
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
