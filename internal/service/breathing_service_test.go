package service

import (
	"context"
	"testing"
	"wellness_backend/internal/model"
	"wellness_backend/internal/repository"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBreathingRepo struct {
	sessions []model.BreathingSession
}

func (r *stubBreathingRepo) Create(ctx context.Context, session *model.BreathingSession) error {
	r.sessions = append(r.sessions, *session)
	return nil
}

func (r *stubBreathingRepo) StatsByUser(ctx context.Context, userID string) ([]repository.ExerciseCount, error) {
	idx := map[string]int{}
	var out []repository.ExerciseCount
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		i, ok := idx[s.ExerciseID]
		if !ok {
			i = len(out)
			idx[s.ExerciseID] = i
			out = append(out, repository.ExerciseCount{ExerciseID: s.ExerciseID})
		}
		out[i].Sessions++
		out[i].TotalSeconds += int64(s.DurationSeconds)
	}
	return out, nil
}

func TestBreathingRecord(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		cycles   int
		want     int
		duration int
	}{
		{"box", "box", 4, 4, 64},
		{"478", "478", 3, 3, 57},
		{"clamp low", "coherent", 0, 1, 10},
		{"clamp high", "sigh", 500, 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBreathingService(&stubBreathingRepo{})
			session, err := svc.Record(context.Background(), "u1", tt.exercise, tt.cycles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, session.Cycles)
			assert.Equal(t, tt.duration, session.DurationSeconds)
		})
	}
}

func TestBreathingUnknownExercise(t *testing.T) {
	repo := &stubBreathingRepo{}
	svc := NewBreathingService(repo)

	_, err := svc.Record(context.Background(), "u1", "wim-hof", 3)
	assert.ErrorIs(t, err, util.ErrUnknownExercise)
	assert.Empty(t, repo.sessions)
}

func TestBreathingStats(t *testing.T) {
	ctx := context.Background()
	svc := NewBreathingService(&stubBreathingRepo{})

	empty, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, empty.Sessions)
	assert.NotNil(t, empty.ByExercise)

	_, err = svc.Record(ctx, "u1", "box", 2)
	require.NoError(t, err)
	_, err = svc.Record(ctx, "u1", "box", 1)
	require.NoError(t, err)
	_, err = svc.Record(ctx, "u1", "coherent", 6)
	require.NoError(t, err)
	_, err = svc.Record(ctx, "u2", "sigh", 1)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Sessions)
	assert.Equal(t, int64(48+60), stats.TotalSeconds)
	assert.Len(t, stats.ByExercise, 2)
}

func TestBreathingExercisesIsCopy(t *testing.T) {
	svc := NewBreathingService(&stubBreathingRepo{})
	list := svc.Exercises()
	require.NotEmpty(t, list)
	list[0].Inhale = 99
	assert.Equal(t, 4, svc.Exercises()[0].Inhale)
}
