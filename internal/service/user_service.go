package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/internal/wellness"
	"wellness_backend/pkg/logger"

	"go.uber.org/zap"
)

const maxLeaderboard = 50

type UserRepository interface {
	EnsureUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
	FindTopByCoins(ctx context.Context, limit int) ([]model.User, error)
}

// Profile 个人资料及奖励账本
type Profile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Avatar         string     `json:"avatar"`
	Role           string     `json:"role"`
	Coins          int        `json:"coins"`
	Streak         int        `json:"streak"`
	LastCheckIn    *time.Time `json:"lastCheckIn,omitempty"`
	CheckedInToday bool       `json:"checkedInToday"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Coins  int    `json:"coins"`
	Streak int    `json:"streak"`
}

type UserService struct {
	repo  UserRepository
	store ObjectStore
	loc   *time.Location
	now   func() time.Time
}

func NewUserService(repo UserRepository, store ObjectStore, loc *time.Location) *UserService {
	return &UserService{repo: repo, store: store, loc: loc, now: time.Now}
}

// Ensure 首次请求时根据令牌声明创建用户，新用户一律为 member，角色只能由管理员调整
func (s *UserService) Ensure(ctx context.Context, claims *util.Claims) (*model.User, error) {
	return s.repo.EnsureUser(ctx, &model.User{
		ID:       claims.UserID(),
		Name:     claims.Name,
		Email:    claims.Email,
		Role:     model.Member,
		LastSeen: s.now(),
	})
}

// Profile checkedInToday 取自最近一次日记时间
func (s *UserService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkedIn := false
	if user.LastCheckIn != nil {
		checkedIn = wellness.DateKey(*user.LastCheckIn, s.loc) == wellness.DateKey(s.now(), s.loc)
	}

	return &Profile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Avatar:         user.Avatar,
		Role:           string(user.Role),
		Coins:          user.Coins,
		Streak:         user.Streak,
		LastCheckIn:    user.LastCheckIn,
		CheckedInToday: checkedIn,
	}, nil
}

// UploadAvatar 上传头像并删除旧文件
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename string, reader io.ReadSeeker, size int64) (string, error) {
	contentType, err := util.SniffContentType(reader, util.MimeImage)
	if err != nil {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%d%s", userID, s.now().UnixNano(), strings.ToLower(path.Ext(filename)))
	url, err := s.store.Put(ctx, key, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	if old := avatarKey(user.Avatar, userID); old != "" {
		if err := s.store.Remove(ctx, old); err != nil {
			logger.Log.Warn("Failed to remove old avatar", zap.String("key", old), zap.Error(err))
		}
	}
	return url, nil
}

// avatarKey 从 URL 中还原存储 key
func avatarKey(url, userID string) string {
	idx := strings.Index(url, "avatars/"+userID+"/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}

func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > maxLeaderboard {
		limit = 10
	}
	users, err := s.repo.FindTopByCoins(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		out = append(out, LeaderboardEntry{
			Rank:   i + 1,
			ID:     u.ID,
			Name:   u.Name,
			Avatar: u.Avatar,
			Coins:  u.Coins,
			Streak: u.Streak,
		})
	}
	return out, nil
}
