package repository

import (
	"context"

	"gorm.io/gorm"

	"skillpath_backend/internal/model"
)

type TargetJobRepository struct {
	DB *gorm.DB
}

func NewTargetJobRepository(db *gorm.DB) *TargetJobRepository {
	return &TargetJobRepository{DB: db}
}

func (r *TargetJobRepository) Create(ctx context.Context, job *model.TargetJobRecord) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *TargetJobRepository) Recent(ctx context.Context, userID uint, limit int) ([]model.TargetJobRecord, error) {
	var jobs []model.TargetJobRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *TargetJobRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TargetJobRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
