package repository

import (
	"context"
	"errors"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// EnsureUser 按身份提供方的 subject 创建或刷新用户资料，账本字段不受影响
func (r *UserRepository) EnsureUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	if user.LastSeen.IsZero() {
		user.LastSeen = now
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "last_seen", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindTopByCoins(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Order("coins DESC").Order("streak DESC").Limit(limit).Find(&users).Error
	return users, err
}

// lockUser 在事务内以 SELECT ... FOR UPDATE 读取账本行
func lockUser(tx *gorm.DB, userID string) (*model.User, error) {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// saveLedger 只写回账本字段
func saveLedger(tx *gorm.DB, user *model.User) error {
	return tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"coins":         user.Coins,
		"streak":        user.Streak,
		"last_check_in": user.LastCheckIn,
	}).Error
}
