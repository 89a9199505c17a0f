package repository

import (
	"context"
	"time"
	"wellness_backend/internal/model"

	"gorm.io/gorm"
)

type CheckInRepository struct {
	DB *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{DB: db}
}

// CreateWithReward 在同一事务中写入自评记录并增加金币
func (r *CheckInRepository) CreateWithReward(ctx context.Context, checkin *model.CheckIn, coins int) (*model.User, error) {
	var user *model.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := lockUser(tx, checkin.UserID)
		if err != nil {
			return err
		}

		if err := tx.Create(checkin).Error; err != nil {
			return err
		}

		u.Coins += coins
		if err := saveLedger(tx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListByUser 按时间倒序分页
func (r *CheckInRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.CheckIn, int64, error) {
	var checkins []model.CheckIn
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.CheckIn{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&checkins).Error
	return checkins, total, err
}

// ListSince 返回 since 之后的全部记录，按时间升序；since 为零值时返回全部
func (r *CheckInRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Order("created_at ASC").Find(&checkins).Error
	return checkins, err
}

func (r *CheckInRepository) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.CheckIn{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
