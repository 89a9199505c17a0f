package service

import (
	"context"
	"errors"
	"math/rand"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
)

// 肯定语轮换间隔
const affirmationRotation = 12 * time.Hour

type AffirmationRepository interface {
	GetAll(ctx context.Context) ([]*model.Affirmation, error)
	GetEnabled(ctx context.Context) ([]*model.Affirmation, error)
	GetCurrent(ctx context.Context) (*model.Affirmation, error)
	FindByID(ctx context.Context, id uint) (*model.Affirmation, error)
	Create(ctx context.Context, affirmation *model.Affirmation) error
	Update(ctx context.Context, affirmation *model.Affirmation) error
	Delete(ctx context.Context, id uint) error
	SetCurrent(ctx context.Context, id uint, at time.Time) error
	CountEnabled(ctx context.Context, excludeID uint) (int64, error)
}

type AffirmationRequest struct {
	Content   string `json:"content" binding:"required"`
	IsEnabled *bool  `json:"isEnabled"`
}

type AffirmationService struct {
	repo AffirmationRepository
	now  func() time.Time
	pick func(n int) int
}

func NewAffirmationService(repo AffirmationRepository) *AffirmationService {
	return &AffirmationService{repo: repo, now: time.Now, pick: rand.Intn}
}

func (s *AffirmationService) List(ctx context.Context) ([]*model.Affirmation, error) {
	return s.repo.GetAll(ctx)
}

// Current 返回当前肯定语，超过 12 小时随机切换到另一条启用的
func (s *AffirmationService) Current(ctx context.Context) (string, error) {
	now := s.now()
	current, err := s.repo.GetCurrent(ctx)
	if err != nil && !errors.Is(err, util.ErrNotFound) {
		return "", err
	}

	if current == nil || !current.IsEnabled {
		enabled, err := s.repo.GetEnabled(ctx)
		if err != nil {
			return "", err
		}
		if len(enabled) == 0 {
			return "", util.ErrNotFound
		}
		if err := s.repo.SetCurrent(ctx, enabled[0].ID, now); err != nil {
			return "", err
		}
		return enabled[0].Content, nil
	}

	if now.Sub(current.LastUsedAt) < affirmationRotation {
		return current.Content, nil
	}

	enabled, err := s.repo.GetEnabled(ctx)
	if err != nil {
		return current.Content, nil
	}
	var candidates []*model.Affirmation
	for _, a := range enabled {
		if a.ID != current.ID {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return current.Content, nil
	}

	next := candidates[s.pick(len(candidates))]
	if err := s.repo.SetCurrent(ctx, next.ID, now); err != nil {
		return current.Content, nil
	}
	return next.Content, nil
}

func (s *AffirmationService) Create(ctx context.Context, req AffirmationRequest) (*model.Affirmation, error) {
	affirmation := &model.Affirmation{
		Content:    req.Content,
		IsEnabled:  req.IsEnabled == nil || *req.IsEnabled,
		LastUsedAt: s.now(),
	}
	if err := s.repo.Create(ctx, affirmation); err != nil {
		return nil, err
	}
	return affirmation, nil
}

// Update 禁用最后一条启用的肯定语会被拒绝
func (s *AffirmationService) Update(ctx context.Context, id uint, req AffirmationRequest) (*model.Affirmation, error) {
	affirmation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enabled := affirmation.IsEnabled
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}
	if affirmation.IsEnabled && !enabled {
		if err := s.ensureOthersEnabled(ctx, id); err != nil {
			return nil, err
		}
	}

	affirmation.Content = req.Content
	affirmation.IsEnabled = enabled
	if err := s.repo.Update(ctx, affirmation); err != nil {
		return nil, err
	}
	return affirmation, nil
}

func (s *AffirmationService) Delete(ctx context.Context, id uint) error {
	affirmation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if affirmation.IsEnabled {
		if err := s.ensureOthersEnabled(ctx, id); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

// SwitchTo 立即切换到指定的肯定语
func (s *AffirmationService) SwitchTo(ctx context.Context, id uint) error {
	affirmation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !affirmation.IsEnabled {
		return util.ErrPermissionDenied
	}
	return s.repo.SetCurrent(ctx, id, s.now())
}

func (s *AffirmationService) ensureOthersEnabled(ctx context.Context, id uint) error {
	count, err := s.repo.CountEnabled(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return util.ErrLastAffirmation
	}
	return nil
}
