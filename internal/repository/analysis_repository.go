package repository

import (
	"context"

	"gorm.io/gorm"

	"skillpath_backend/internal/model"
)

// AnalysisRepository stores the skills-gap history of each user.
type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

// Append saves a and then hard deletes everything but the newest keep
// entries of the same user.
func (r *AnalysisRepository) Append(ctx context.Context, a *model.SkillGapAnalysis, keep int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}

		var kept []uint
		if err := tx.Model(&model.SkillGapAnalysis{}).
			Where("user_id = ?", a.UserID).
			Order("id DESC").
			Limit(keep).
			Pluck("id", &kept).Error; err != nil {
			return err
		}
		if len(kept) < keep {
			return nil
		}

		return tx.Unscoped().
			Where("user_id = ? AND id NOT IN ?", a.UserID, kept).
			Delete(&model.SkillGapAnalysis{}).Error
	})
}

// ListByUser returns the newest analyses first.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.SkillGapAnalysis, error) {
	var list []model.SkillGapAnalysis
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *AnalysisRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SkillGapAnalysis{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
