package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const postViewTTL = 10 * time.Minute

type CommunityRepository interface {
	ListGroups(ctx context.Context, offset, limit int, search string) ([]model.Group, int64, error)
	FindGroup(ctx context.Context, id string) (*model.Group, error)
	CreateGroup(ctx context.Context, group *model.Group) error
	Join(ctx context.Context, groupID, userID string) error
	Leave(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	CreatePost(ctx context.Context, post *model.GroupPost) error
	ListPosts(ctx context.Context, groupID string, offset, limit int) ([]model.GroupPost, int64, error)
	FindPost(ctx context.Context, id string) (*model.GroupPost, error)
	DeletePost(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, postID string) error
}

type GroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type PostRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommunityService struct {
	repo  CommunityRepository
	Redis *redis.Client
}

func NewCommunityService(repo CommunityRepository, rdb *redis.Client) *CommunityService {
	return &CommunityService{repo: repo, Redis: rdb}
}

func (s *CommunityService) ListGroups(ctx context.Context, page, pageSize int, search string) ([]model.Group, int64, error) {
	return s.repo.ListGroups(ctx, (page-1)*pageSize, pageSize, strings.TrimSpace(search))
}

func (s *CommunityService) CreateGroup(ctx context.Context, userID string, req GroupRequest) (*model.Group, error) {
	group := &model.Group{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   userID,
	}
	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *CommunityService) Join(ctx context.Context, groupID, userID string) error {
	if _, err := s.repo.FindGroup(ctx, groupID); err != nil {
		return err
	}
	return s.repo.Join(ctx, groupID, userID)
}

func (s *CommunityService) Leave(ctx context.Context, groupID, userID string) error {
	return s.repo.Leave(ctx, groupID, userID)
}

// CreatePost 只有小组成员可以发帖
func (s *CommunityService) CreatePost(ctx context.Context, groupID, userID string, req PostRequest) (*model.GroupPost, error) {
	if _, err := s.repo.FindGroup(ctx, groupID); err != nil {
		return nil, err
	}
	member, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, util.ErrNotGroupMember
	}

	post := &model.GroupPost{GroupID: groupID, AuthorID: userID, Content: req.Content}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) ListPosts(ctx context.Context, groupID string, page, pageSize int) ([]model.GroupPost, int64, error) {
	if _, err := s.repo.FindGroup(ctx, groupID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListPosts(ctx, groupID, (page-1)*pageSize, pageSize)
}

// GetPost 同一用户 10 分钟内重复查看只计一次
func (s *CommunityService) GetPost(ctx context.Context, postID, userID string) (*model.GroupPost, error) {
	post, err := s.repo.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.firstVisit(ctx, fmt.Sprintf("%s%s:u:%s", util.PostViewPrefix, postID, userID)) {
		if err := s.repo.IncrementViews(ctx, postID); err != nil {
			logger.WithContext(ctx).Warn("Failed to increment post views", zap.String("postID", postID), zap.Error(err))
		} else {
			post.Views++
		}
	}
	return post, nil
}

func (s *CommunityService) firstVisit(ctx context.Context, key string) bool {
	if s.Redis == nil {
		return true
	}
	ok, err := s.Redis.SetNX(ctx, key, "1", postViewTTL).Result()
	if err != nil {
		return true
	}
	return ok
}

// DeletePost 只有作者可以删除
func (s *CommunityService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.repo.FindPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return util.ErrPermissionDenied
	}
	return s.repo.DeletePost(ctx, postID)
}
