package repository

import (
	"context"

	"gorm.io/gorm"

	"skillpath_backend/internal/model"
)

type ResumeScanRepository struct {
	DB *gorm.DB
}

func NewResumeScanRepository(db *gorm.DB) *ResumeScanRepository {
	return &ResumeScanRepository{DB: db}
}

func (r *ResumeScanRepository) Create(ctx context.Context, scan *model.ResumeScan) error {
	return r.DB.WithContext(ctx).Create(scan).Error
}

// Finish records the outcome of a scan.
func (r *ResumeScanRepository) Finish(ctx context.Context, id string, status model.ScanStatus, years int) error {
	return r.DB.WithContext(ctx).Model(&model.ResumeScan{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "years_experience": years}).Error
}

func (r *ResumeScanRepository) FindByID(ctx context.Context, id string) (*model.ResumeScan, error) {
	var scan model.ResumeScan
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *ResumeScanRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]model.ResumeScan, error) {
	var scans []model.ResumeScan
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scans).Error
	return scans, err
}
