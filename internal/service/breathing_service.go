package service

import (
	"context"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/repository"
	"wellness_backend/internal/util"
)

const maxBreathingCycles = 100

var breathingCatalog = []model.BreathingExercise{
	{ID: "box", Name: "Box breathing", Description: "Inhale, hold, exhale and hold again for four counts each.", Inhale: 4, HoldIn: 4, Exhale: 4, HoldOut: 4},
	{ID: "478", Name: "4-7-8 breathing", Description: "A long hold and slow exhale that helps the body settle before sleep.", Inhale: 4, HoldIn: 7, Exhale: 8},
	{ID: "coherent", Name: "Coherent breathing", Description: "Even five second breaths, about six breaths per minute.", Inhale: 5, Exhale: 5},
	{ID: "sigh", Name: "Physiological sigh", Description: "Two short inhales through the nose followed by a long exhale.", Inhale: 3, HoldIn: 1, Exhale: 6},
}

type BreathingRepository interface {
	Create(ctx context.Context, session *model.BreathingSession) error
	StatsByUser(ctx context.Context, userID string) ([]repository.ExerciseCount, error)
}

type BreathingStats struct {
	Sessions     int64                      `json:"sessions"`
	TotalSeconds int64                      `json:"totalSeconds"`
	ByExercise   []repository.ExerciseCount `json:"byExercise"`
}

type BreathingService struct {
	repo BreathingRepository
	now  func() time.Time
}

func NewBreathingService(repo BreathingRepository) *BreathingService {
	return &BreathingService{repo: repo, now: time.Now}
}

func (s *BreathingService) Exercises() []model.BreathingExercise {
	out := make([]model.BreathingExercise, len(breathingCatalog))
	copy(out, breathingCatalog)
	return out
}

func findExercise(id string) (model.BreathingExercise, bool) {
	for _, e := range breathingCatalog {
		if e.ID == id {
			return e, true
		}
	}
	return model.BreathingExercise{}, false
}

// Record 记录一次完成的练习，时长由节奏和循环次数计算
func (s *BreathingService) Record(ctx context.Context, userID, exerciseID string, cycles int) (*model.BreathingSession, error) {
	exercise, ok := findExercise(exerciseID)
	if !ok {
		return nil, util.ErrUnknownExercise
	}
	if cycles < 1 {
		cycles = 1
	}
	if cycles > maxBreathingCycles {
		cycles = maxBreathingCycles
	}

	session := &model.BreathingSession{
		UserID:          userID,
		ExerciseID:      exercise.ID,
		Cycles:          cycles,
		DurationSeconds: cycles * exercise.CycleSeconds(),
	}
	session.CreatedAt = s.now()

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *BreathingService) Stats(ctx context.Context, userID string) (*BreathingStats, error) {
	counts, err := s.repo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &BreathingStats{ByExercise: counts}
	for _, c := range counts {
		stats.Sessions += c.Sessions
		stats.TotalSeconds += c.TotalSeconds
	}
	if stats.ByExercise == nil {
		stats.ByExercise = []repository.ExerciseCount{}
	}
	return stats, nil
}
