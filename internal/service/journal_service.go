package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/internal/wellness"
	"wellness_backend/pkg/logger"
	"wellness_backend/pkg/monitoring"
	"wellness_backend/pkg/tracing"

	"github.com/yuin/goldmark"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// 日记创建后可修改、删除的时间窗口
const journalEditWindow = 24 * time.Hour

type JournalRepository interface {
	CreateWithReward(ctx context.Context, entry *model.JournalEntry, reward func(*model.User)) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.JournalEntry, int64, error)
	Update(ctx context.Context, entry *model.JournalEntry) error
	Delete(ctx context.Context, id string) error
}

type JournalInput struct {
	Title   string `json:"title" binding:"max=200"`
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood" binding:"max=30"`
}

// JournalResult 保存日记后的账本状态
type JournalResult struct {
	Entry  *model.JournalEntry `json:"entry"`
	Coins  int                 `json:"coins"`
	Streak int                 `json:"streak"`
}

type JournalService struct {
	repo    JournalRepository
	locker  UserLocker
	ai      AIClient
	loc     *time.Location
	lockTTL time.Duration
	now     func() time.Time
}

func NewJournalService(repo JournalRepository, locker UserLocker, ai AIClient, loc *time.Location, lockTTL time.Duration) *JournalService {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Second
	}
	return &JournalService{
		repo:    repo,
		locker:  locker,
		ai:      ai,
		loc:     loc,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

// Create 写入今天的日记：+10 金币，重新计算连续天数，lastCheckIn 更新为当前时间。
// 当天已有日记时返回 util.ErrDuplicateEntry，账本不变。
func (s *JournalService) Create(ctx context.Context, userID string, input JournalInput) (*JournalResult, error) {
	ctx, span := tracing.StartSpan(ctx, "journal.create", attribute.String("user.id", userID))
	defer span.End()

	release, err := s.locker.Acquire(ctx, util.JournalLockPrefix+userID, s.lockTTL)
	if err != nil {
		monitoring.JournalEntriesTotal.WithLabelValues("locked").Inc()
		return nil, err
	}
	defer release()

	now := s.now()
	entry := &model.JournalEntry{
		ID:        model.GenerateUUID(),
		CreatedAt: now,
		UserID:    userID,
		EntryDate: wellness.DateKey(now, s.loc),
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Mood:      input.Mood,
	}

	user, err := s.repo.CreateWithReward(ctx, entry, func(u *model.User) {
		u.Coins += util.JournalReward
		u.Streak = wellness.NextStreak(u.Streak, u.LastCheckIn, now, s.loc)
		u.LastCheckIn = &now
	})
	if err != nil {
		if errors.Is(err, util.ErrDuplicateEntry) {
			monitoring.JournalEntriesTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		monitoring.JournalEntriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save journal entry: %w", err)
	}

	monitoring.JournalEntriesTotal.WithLabelValues("created").Inc()
	monitoring.CoinsAwarded.WithLabelValues("journal").Add(util.JournalReward)

	return &JournalResult{Entry: entry, Coins: user.Coins, Streak: user.Streak}, nil
}

func (s *JournalService) List(ctx context.Context, userID string, page, pageSize int) ([]model.JournalEntry, int64, error) {
	return s.repo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
}

// Get 非本人的日记按不存在处理
func (s *JournalService) Get(ctx context.Context, userID, id string) (*model.JournalEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, util.ErrNotFound
	}
	entry.ContentHTML = renderMarkdown(entry.Content)
	return entry, nil
}

// renderMarkdown 原始 HTML 不会被输出
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func (s *JournalService) mutable(ctx context.Context, userID, id string) (*model.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s.now().Sub(entry.CreatedAt) > journalEditWindow {
		return nil, util.ErrEntryLocked
	}
	return entry, nil
}

// Update 仅在创建后 24 小时内允许，不影响账本
func (s *JournalService) Update(ctx context.Context, userID, id string, input JournalInput) (*model.JournalEntry, error) {
	entry, err := s.mutable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	entry.Title = strings.TrimSpace(input.Title)
	entry.Content = input.Content
	entry.Mood = input.Mood
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	entry.ContentHTML = renderMarkdown(entry.Content)
	return entry, nil
}

// Delete 删除不回收已发放的金币和连续天数
func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.mutable(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Reflect 让 AI 对一篇日记给出温和的回应并保存
func (s *JournalService) Reflect(ctx context.Context, userID, id string) (*model.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s.ai == nil || !s.ai.Enabled() {
		return nil, util.ErrAIUnavailable
	}

	prompt := fmt.Sprintf("I wrote this in my journal today (mood: %s).\n\n%s\n\n%s\n\n"+
		"Reply with a short, kind reflection and one gentle question I could think about.",
		entry.Mood, entry.Title, entry.Content)

	text, err := s.ai.Complete(ctx, supportSystemPrompt, prompt)
	observeAI("reflection", err)
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to generate journal reflection", zap.String("entryID", id), zap.Error(err))
		return nil, util.ErrAIUnavailable
	}

	entry.Reflection = text
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
