package repository

import (
	"context"
	"errors"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) ListGroups(ctx context.Context, offset, limit int, search string) ([]model.Group, int64, error) {
	var groups []model.Group
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Group{})
	if search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("member_count DESC, created_at DESC").Offset(offset).Limit(limit).Find(&groups).Error
	return groups, total, err
}

func (r *CommunityRepository) FindGroup(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.DB.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup 创建小组，创建者自动成为成员
func (r *CommunityRepository) CreateGroup(ctx context.Context, group *model.Group) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group.MemberCount = 1
		if err := tx.Create(group).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrGroupNameTaken
			}
			return err
		}
		return tx.Create(&model.GroupMember{GroupID: group.ID, UserID: group.CreatorID}).Error
	})
}

func (r *CommunityRepository) Join(ctx context.Context, groupID, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.GroupMember{GroupID: groupID, UserID: userID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyMember
			}
			return err
		}
		return tx.Model(&model.Group{}).Where("id = ?", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}

func (r *CommunityRepository) Leave(ctx context.Context, groupID, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotGroupMember
		}
		return tx.Model(&model.Group{}).Where("id = ? AND member_count > 0", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	})
}

func (r *CommunityRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityRepository) CreatePost(ctx context.Context, post *model.GroupPost) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *CommunityRepository) ListPosts(ctx context.Context, groupID string, offset, limit int) ([]model.GroupPost, int64, error) {
	var posts []model.GroupPost
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.GroupPost{}).Where("group_id = ?", groupID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).
		Preload("Author").
		Find(&posts).Error
	return posts, total, err
}

func (r *CommunityRepository) FindPost(ctx context.Context, id string) (*model.GroupPost, error) {
	var post model.GroupPost
	err := r.DB.WithContext(ctx).Preload("Author").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *CommunityRepository) DeletePost(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.GroupPost{}, "id = ?", id).Error
}

func (r *CommunityRepository) IncrementViews(ctx context.Context, postID string) error {
	return r.DB.WithContext(ctx).Model(&model.GroupPost{}).Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
