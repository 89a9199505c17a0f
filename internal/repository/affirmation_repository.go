package repository

import (
	"context"
	"errors"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"gorm.io/gorm"
)

type AffirmationRepository struct {
	DB *gorm.DB
}

func NewAffirmationRepository(db *gorm.DB) *AffirmationRepository {
	return &AffirmationRepository{DB: db}
}

func (r *AffirmationRepository) GetAll(ctx context.Context) ([]*model.Affirmation, error) {
	var affirmations []*model.Affirmation
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&affirmations).Error
	return affirmations, err
}

// 获取启用的肯定语，最久未使用的在前
func (r *AffirmationRepository) GetEnabled(ctx context.Context) ([]*model.Affirmation, error) {
	var affirmations []*model.Affirmation
	err := r.DB.WithContext(ctx).Where("is_enabled = ?", true).Order("last_used_at ASC").Find(&affirmations).Error
	return affirmations, err
}

func (r *AffirmationRepository) GetCurrent(ctx context.Context) (*model.Affirmation, error) {
	var affirmation model.Affirmation
	err := r.DB.WithContext(ctx).Where("is_currently_used = ?", true).First(&affirmation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &affirmation, nil
}

func (r *AffirmationRepository) FindByID(ctx context.Context, id uint) (*model.Affirmation, error) {
	var affirmation model.Affirmation
	err := r.DB.WithContext(ctx).First(&affirmation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &affirmation, nil
}

func (r *AffirmationRepository) Create(ctx context.Context, affirmation *model.Affirmation) error {
	return r.DB.WithContext(ctx).Create(affirmation).Error
}

func (r *AffirmationRepository) Update(ctx context.Context, affirmation *model.Affirmation) error {
	return r.DB.WithContext(ctx).Save(affirmation).Error
}

func (r *AffirmationRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Affirmation{}, id).Error
}

// SetCurrent 切换当前使用的肯定语
func (r *AffirmationRepository) SetCurrent(ctx context.Context, id uint, at time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Affirmation{}).Where("is_currently_used = ?", true).
			Update("is_currently_used", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Affirmation{}).Where("id = ?", id).Updates(map[string]interface{}{
			"is_currently_used": true,
			"last_used_at":      at,
		}).Error
	})
}

// CountEnabled 统计启用的条目，可排除指定 ID
func (r *AffirmationRepository) CountEnabled(ctx context.Context, excludeID uint) (int64, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&model.Affirmation{}).Where("is_enabled = ?", true)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}
