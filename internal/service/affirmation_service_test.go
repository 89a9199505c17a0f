package service

import (
	"context"
	"sort"
	"testing"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAffirmationRepo struct {
	items  map[uint]*model.Affirmation
	nextID uint
}

func newStubAffirmationRepo(items ...*model.Affirmation) *stubAffirmationRepo {
	r := &stubAffirmationRepo{items: map[uint]*model.Affirmation{}}
	for _, a := range items {
		r.nextID++
		a.ID = r.nextID
		r.items[a.ID] = a
	}
	return r
}

func (r *stubAffirmationRepo) sorted(filter func(*model.Affirmation) bool) []*model.Affirmation {
	var out []*model.Affirmation
	for _, a := range r.items {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubAffirmationRepo) GetAll(ctx context.Context) ([]*model.Affirmation, error) {
	return r.sorted(func(*model.Affirmation) bool { return true }), nil
}

func (r *stubAffirmationRepo) GetEnabled(ctx context.Context) ([]*model.Affirmation, error) {
	return r.sorted(func(a *model.Affirmation) bool { return a.IsEnabled }), nil
}

func (r *stubAffirmationRepo) GetCurrent(ctx context.Context) (*model.Affirmation, error) {
	cur := r.sorted(func(a *model.Affirmation) bool { return a.IsCurrentlyUsed })
	if len(cur) == 0 {
		return nil, util.ErrNotFound
	}
	return cur[0], nil
}

func (r *stubAffirmationRepo) FindByID(ctx context.Context, id uint) (*model.Affirmation, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return a, nil
}

func (r *stubAffirmationRepo) Create(ctx context.Context, a *model.Affirmation) error {
	r.nextID++
	a.ID = r.nextID
	r.items[a.ID] = a
	return nil
}

func (r *stubAffirmationRepo) Update(ctx context.Context, a *model.Affirmation) error {
	r.items[a.ID] = a
	return nil
}

func (r *stubAffirmationRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *stubAffirmationRepo) SetCurrent(ctx context.Context, id uint, at time.Time) error {
	for _, a := range r.items {
		a.IsCurrentlyUsed = a.ID == id
		if a.ID == id {
			a.LastUsedAt = at
		}
	}
	return nil
}

func (r *stubAffirmationRepo) CountEnabled(ctx context.Context, excludeID uint) (int64, error) {
	n := len(r.sorted(func(a *model.Affirmation) bool { return a.IsEnabled && a.ID != excludeID }))
	return int64(n), nil
}

func newAffirmation(content string, enabled, current bool, lastUsed time.Time) *model.Affirmation {
	return &model.Affirmation{Model: gorm.Model{}, Content: content, IsEnabled: enabled, IsCurrentlyUsed: current, LastUsedAt: lastUsed}
}

func TestAffirmationRotation(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	repo := newStubAffirmationRepo(
		newAffirmation("one", true, true, now.Add(-2*time.Hour)),
		newAffirmation("two", true, false, now.Add(-48*time.Hour)),
		newAffirmation("three", false, false, now.Add(-48*time.Hour)),
	)
	svc := NewAffirmationService(repo)
	svc.now = fixedClock(now)
	svc.pick = func(n int) int { return 0 }

	content, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", content)

	svc.now = fixedClock(now.Add(11 * time.Hour))
	content, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "two", content)
	assert.True(t, repo.items[2].IsCurrentlyUsed)
	assert.False(t, repo.items[1].IsCurrentlyUsed)
}

func TestAffirmationCurrentWithoutSelection(t *testing.T) {
	repo := newStubAffirmationRepo(newAffirmation("only", true, false, time.Time{}))
	svc := NewAffirmationService(repo)

	content, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "only", content)
	assert.True(t, repo.items[1].IsCurrentlyUsed)

	empty := NewAffirmationService(newStubAffirmationRepo())
	_, err = empty.Current(context.Background())
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestAffirmationKeepsOneEnabled(t *testing.T) {
	ctx := context.Background()
	repo := newStubAffirmationRepo(
		newAffirmation("one", true, true, time.Time{}),
		newAffirmation("two", false, false, time.Time{}),
	)
	svc := NewAffirmationService(repo)
	disabled := false

	_, err := svc.Update(ctx, 1, AffirmationRequest{Content: "one", IsEnabled: &disabled})
	assert.ErrorIs(t, err, util.ErrLastAffirmation)
	assert.ErrorIs(t, svc.Delete(ctx, 1), util.ErrLastAffirmation)

	require.NoError(t, svc.Delete(ctx, 2))

	created, err := svc.Create(ctx, AffirmationRequest{Content: "three"})
	require.NoError(t, err)
	assert.True(t, created.IsEnabled)

	updated, err := svc.Update(ctx, 1, AffirmationRequest{Content: "one!", IsEnabled: &disabled})
	require.NoError(t, err)
	assert.False(t, updated.IsEnabled)

	assert.ErrorIs(t, svc.SwitchTo(ctx, 1), util.ErrPermissionDenied)
	require.NoError(t, svc.SwitchTo(ctx, created.ID))
	assert.True(t, repo.items[created.ID].IsCurrentlyUsed)
}
