package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/internal/wellness"
	"wellness_backend/pkg/logger"
	"wellness_backend/pkg/monitoring"
	"wellness_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const maxHeatmapDays = 366

type CheckInRepository interface {
	CreateWithReward(ctx context.Context, checkin *model.CheckIn, coins int) (*model.User, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.CheckIn, int64, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]model.CheckIn, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

// CheckInView 一条自评及其重新计算的分数
type CheckInView struct {
	model.CheckIn
	wellness.Result
	wellness.Status
}

// CheckInResult 提交自评后的返回
type CheckInResult struct {
	CheckInView
	Coins int `json:"coins"`
}

type CheckInService struct {
	repo        CheckInRepository
	ai          AIClient
	loc         *time.Location
	heatmapDays int
	now         func() time.Time
}

func NewCheckInService(repo CheckInRepository, ai AIClient, loc *time.Location, heatmapDays int) *CheckInService {
	if heatmapDays <= 0 {
		heatmapDays = wellness.DefaultHeatmapDays
	}
	return &CheckInService{
		repo:        repo,
		ai:          ai,
		loc:         loc,
		heatmapDays: heatmapDays,
		now:         time.Now,
	}
}

func newCheckInView(c model.CheckIn) CheckInView {
	res := wellness.Score(c.Answers)
	return CheckInView{CheckIn: c, Result: res, Status: wellness.Classify(res.AverageSeverity)}
}

// Questions 返回题目目录
func (s *CheckInService) Questions() []wellness.Question {
	return wellness.Questions()
}

// Submit 计分、分级、生成洞察，然后在一个事务中保存记录并奖励金币
func (s *CheckInService) Submit(ctx context.Context, userID string, answers []string) (*CheckInResult, error) {
	ctx, span := tracing.StartSpan(ctx, "checkin.submit", attribute.String("user.id", userID))
	defer span.End()

	if len(answers) != wellness.QuestionCount() {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", util.ErrInvalidAnswers, wellness.QuestionCount(), len(answers))
	}

	res := wellness.Score(answers)
	status := wellness.Classify(res.AverageSeverity)

	checkin := &model.CheckIn{
		UserID:  userID,
		Answers: answers,
		Insight: s.insight(ctx, userID, answers, res, status),
	}
	checkin.CreatedAt = s.now()

	user, err := s.repo.CreateWithReward(ctx, checkin, util.CheckInReward)
	if err != nil {
		return nil, fmt.Errorf("save check-in: %w", err)
	}

	monitoring.CheckInsTotal.WithLabelValues(string(status.Label)).Inc()
	monitoring.CoinsAwarded.WithLabelValues("checkin").Add(util.CheckInReward)

	return &CheckInResult{
		CheckInView: CheckInView{CheckIn: *checkin, Result: res, Status: status},
		Coins:       user.Coins,
	}, nil
}

// insight AI 失败只记录日志，不影响保存
func (s *CheckInService) insight(ctx context.Context, userID string, answers []string, res wellness.Result, status wellness.Status) string {
	if s.ai == nil || !s.ai.Enabled() {
		return ""
	}

	text, err := s.ai.Complete(ctx, supportSystemPrompt, insightPrompt(answers, res, status))
	observeAI("insight", err)
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to generate check-in insight",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return ""
	}
	return text
}

func insightPrompt(answers []string, res wellness.Result, status wellness.Status) string {
	var b strings.Builder
	b.WriteString("Here are my answers to a short wellbeing check-in:\n")
	for i, q := range wellness.Questions() {
		if i >= len(answers) {
			break
		}
		fmt.Fprintf(&b, "- %s %s\n", q.Prompt, answers[i])
	}
	fmt.Fprintf(&b, "My wellness score is %.2f out of 3 (%s).\n", res.WellnessScore, status.Label)
	b.WriteString("In three or four sentences, reflect on how I might be feeling and suggest one small thing I could do today.")
	return b.String()
}

func (s *CheckInService) History(ctx context.Context, userID string, page, pageSize int) ([]CheckInView, int64, error) {
	checkins, total, err := s.repo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]CheckInView, 0, len(checkins))
	for _, c := range checkins {
		views = append(views, newCheckInView(c))
	}
	return views, total, nil
}

// Trend days<=0 时返回全部历史
func (s *CheckInService) Trend(ctx context.Context, userID string, days int) ([]wellness.TrendPoint, error) {
	var since time.Time
	if days > 0 {
		since = s.dayStart(s.now()).AddDate(0, 0, -(days - 1))
	}

	checkins, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return wellness.Trend(toEntries(checkins), s.loc), nil
}

// Heatmap days<=0 时使用默认窗口，超过 366 时截断为 366
func (s *CheckInService) Heatmap(ctx context.Context, userID string, days int) ([]wellness.HeatmapDay, error) {
	if days <= 0 {
		days = s.heatmapDays
	}
	if days > maxHeatmapDays {
		days = maxHeatmapDays
	}

	now := s.now()
	since := s.dayStart(now).AddDate(0, 0, -(days - 1))
	checkins, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return wellness.Heatmap(toEntries(checkins), days, now, s.loc), nil
}

// CheckedInToday 今天（服务器时区）是否已经自评
func (s *CheckInService) CheckedInToday(ctx context.Context, userID string) (bool, error) {
	count, err := s.repo.CountSince(ctx, userID, s.dayStart(s.now()))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CheckInService) dayStart(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func toEntries(checkins []model.CheckIn) []wellness.Entry {
	entries := make([]wellness.Entry, 0, len(checkins))
	for _, c := range checkins {
		entries = append(entries, wellness.Entry{Answers: c.Answers, CreatedAt: c.CreatedAt})
	}
	return entries
}
