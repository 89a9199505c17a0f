package repository

import (
	"context"
	"wellness_backend/internal/model"

	"gorm.io/gorm"
)

type BreathingRepository struct {
	DB *gorm.DB
}

func NewBreathingRepository(db *gorm.DB) *BreathingRepository {
	return &BreathingRepository{DB: db}
}

// ExerciseCount 按练习统计的次数与时长
type ExerciseCount struct {
	ExerciseID   string `json:"exerciseId"`
	Sessions     int64  `json:"sessions"`
	TotalSeconds int64  `json:"totalSeconds"`
}

func (r *BreathingRepository) Create(ctx context.Context, session *model.BreathingSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *BreathingRepository) StatsByUser(ctx context.Context, userID string) ([]ExerciseCount, error) {
	var counts []ExerciseCount
	err := r.DB.WithContext(ctx).Model(&model.BreathingSession{}).
		Select("exercise_id, COUNT(*) AS sessions, COALESCE(SUM(duration_seconds), 0) AS total_seconds").
		Where("user_id = ?", userID).
		Group("exercise_id").
		Order("sessions DESC").
		Scan(&counts).Error
	return counts, err
}
