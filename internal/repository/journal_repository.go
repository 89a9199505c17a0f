package repository

import (
	"context"
	"errors"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"gorm.io/gorm"
)

type JournalRepository struct {
	DB *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{DB: db}
}

// CreateWithReward 写入日记并在同一事务中更新账本。
// 同一用户同一天已有日记时返回 util.ErrDuplicateEntry，账本保持不变；
// 并发写入由 (user_id, entry_date) 唯一索引兜底。
func (r *JournalRepository) CreateWithReward(ctx context.Context, entry *model.JournalEntry, reward func(*model.User)) (*model.User, error) {
	if entry.ID == "" {
		entry.ID = model.GenerateUUID()
	}

	var user *model.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := lockUser(tx, entry.UserID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.JournalEntry{}).
			Where("user_id = ? AND entry_date = ?", entry.UserID, entry.EntryDate).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrDuplicateEntry
		}

		if err := insertEntry(tx, entry); err != nil {
			return err
		}

		reward(u)
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

// insertEntry 唯一索引冲突（计数之后的并发写入）转换为 util.ErrDuplicateEntry
func insertEntry(tx *gorm.DB, entry *model.JournalEntry) error {
	err := tx.Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateEntry
	}
	return err
}

func (r *JournalRepository) FindByID(ctx context.Context, id string) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.DB.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *JournalRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.JournalEntry, int64, error) {
	var entries []model.JournalEntry
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.JournalEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("entry_date DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *JournalRepository) Update(ctx context.Context, entry *model.JournalEntry) error {
	return r.DB.WithContext(ctx).Model(entry).Select("title", "content", "mood", "reflection").Updates(entry).Error
}

// Delete 物理删除，删除后当天可以重新写日记
func (r *JournalRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.JournalEntry{}, "id = ?", id).Error
}
