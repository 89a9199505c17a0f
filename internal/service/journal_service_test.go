package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournalService(t *testing.T, now time.Time, users ...*model.User) (*JournalService, *stubJournalRepo, *stubLedger, *stubLocker) {
	t.Helper()
	ledger := newStubLedger(users...)
	repo := newStubJournalRepo(ledger)
	locker := &stubLocker{}
	svc := NewJournalService(repo, locker, &stubAI{}, time.UTC, time.Second)
	svc.now = fixedClock(now)
	return svc, repo, ledger, locker
}

func TestJournalCreateFirstEntry(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, ledger, locker := newTestJournalService(t, now, &model.User{ID: "u1"})

	result, err := svc.Create(context.Background(), "u1", JournalInput{Title: " Today ", Content: "felt ok", Mood: "calm"})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Coins)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, "2026-10-19", result.Entry.EntryDate)
	assert.Equal(t, "Today", result.Entry.Title)
	assert.Len(t, repo.entries, 1)

	u := ledger.users["u1"]
	require.NotNil(t, u.LastCheckIn)
	assert.True(t, u.LastCheckIn.Equal(now))
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestJournalCreateStreak(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		last       time.Time
		now        time.Time
		wantStreak int
	}{
		{
			name:       "consecutive day extends streak",
			streak:     3,
			last:       time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC),
			now:        time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC),
			wantStreak: 4,
		},
		{
			name:       "gap resets streak",
			streak:     7,
			last:       time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
			now:        time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			wantStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := tt.last
			svc, _, ledger, _ := newTestJournalService(t, tt.now, &model.User{ID: "u1", Coins: 40, Streak: tt.streak, LastCheckIn: &last})

			result, err := svc.Create(context.Background(), "u1", JournalInput{Content: "entry"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStreak, result.Streak)
			assert.Equal(t, 50, result.Coins)
			assert.Equal(t, tt.wantStreak, ledger.users["u1"].Streak)
		})
	}
}

func TestJournalCreateDuplicateLeavesLedgerUntouched(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, ledger, _ := newTestJournalService(t, now, &model.User{ID: "u1"})

	_, err := svc.Create(context.Background(), "u1", JournalInput{Content: "first"})
	require.NoError(t, err)

	svc.now = fixedClock(now.Add(10 * time.Hour))
	_, err = svc.Create(context.Background(), "u1", JournalInput{Content: "second"})
	assert.True(t, errors.Is(err, util.ErrDuplicateEntry))

	assert.Len(t, repo.entries, 1)
	assert.Equal(t, 10, ledger.users["u1"].Coins)
	assert.Equal(t, 1, ledger.users["u1"].Streak)
	assert.True(t, ledger.users["u1"].LastCheckIn.Equal(now))
}

func TestJournalCreateUsesConfiguredTimezone(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	// 2026-10-19 23:30 CST 与 2026-10-20 00:30 CST 是两个不同的日历日
	first := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	second := time.Date(2026, 10, 19, 16, 30, 0, 0, time.UTC)

	ledger := newStubLedger(&model.User{ID: "u1"})
	repo := newStubJournalRepo(ledger)
	svc := NewJournalService(repo, &stubLocker{}, nil, shanghai, 0)

	svc.now = fixedClock(first)
	r1, err := svc.Create(context.Background(), "u1", JournalInput{Content: "late night"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", r1.Entry.EntryDate)

	svc.now = fixedClock(second)
	r2, err := svc.Create(context.Background(), "u1", JournalInput{Content: "after midnight"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", r2.Entry.EntryDate)
	assert.Equal(t, 2, r2.Streak)
	assert.Equal(t, 20, r2.Coins)
}

func TestJournalCreateLocked(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, ledger, locker := newTestJournalService(t, now, &model.User{ID: "u1"})
	locker.busy = true

	_, err := svc.Create(context.Background(), "u1", JournalInput{Content: "x"})
	assert.ErrorIs(t, err, util.ErrWriteInProgress)
	assert.Empty(t, repo.entries)
	assert.Equal(t, 0, ledger.users["u1"].Coins)
}

func TestJournalCreateUnknownUser(t *testing.T) {
	svc, _, _, locker := newTestJournalService(t, time.Now())

	_, err := svc.Create(context.Background(), "ghost", JournalInput{Content: "x"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.Equal(t, 1, locker.released)
}

func TestJournalEditWindow(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc, repo, ledger, _ := newTestJournalService(t, created, &model.User{ID: "u1"}, &model.User{ID: "u2"})

	result, err := svc.Create(context.Background(), "u1", JournalInput{Content: "draft"})
	require.NoError(t, err)
	id := result.Entry.ID

	svc.now = fixedClock(created.Add(23 * time.Hour))
	updated, err := svc.Update(context.Background(), "u1", id, JournalInput{Content: "edited", Mood: "better"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, 10, ledger.users["u1"].Coins)

	_, err = svc.Update(context.Background(), "u2", id, JournalInput{Content: "not mine"})
	assert.ErrorIs(t, err, util.ErrNotFound)

	svc.now = fixedClock(created.Add(25 * time.Hour))
	_, err = svc.Update(context.Background(), "u1", id, JournalInput{Content: "too late"})
	assert.ErrorIs(t, err, util.ErrEntryLocked)

	err = svc.Delete(context.Background(), "u1", id)
	assert.ErrorIs(t, err, util.ErrEntryLocked)
	assert.Contains(t, repo.entries, id)
}

func TestJournalDeleteAllowsNewEntrySameDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, ledger, _ := newTestJournalService(t, now, &model.User{ID: "u1"})

	result, err := svc.Create(context.Background(), "u1", JournalInput{Content: "oops"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u1", result.Entry.ID))
	assert.Equal(t, []string{result.Entry.ID}, repo.deleted)

	again, err := svc.Create(context.Background(), "u1", JournalInput{Content: "again"})
	require.NoError(t, err)
	// 删除不回收奖励，重写仍然发放
	assert.Equal(t, 20, again.Coins)
	assert.Equal(t, 1, ledger.users["u1"].Streak)
}

func TestJournalReflect(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newTestJournalService(t, now, &model.User{ID: "u1"})

	result, err := svc.Create(context.Background(), "u1", JournalInput{Title: "Rough day", Content: "work was a lot", Mood: "tired"})
	require.NoError(t, err)

	_, err = svc.Reflect(context.Background(), "u1", result.Entry.ID)
	assert.ErrorIs(t, err, util.ErrAIUnavailable)

	ai := &stubAI{enabled: true, reply: "That sounds exhausting."}
	svc.ai = ai
	entry, err := svc.Reflect(context.Background(), "u1", result.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "That sounds exhausting.", entry.Reflection)
	assert.Equal(t, "That sounds exhausting.", repo.entries[entry.ID].Reflection)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "work was a lot")

	svc.ai = &stubAI{enabled: true, err: errors.New("timeout")}
	_, err = svc.Reflect(context.Background(), "u1", result.Entry.ID)
	assert.ErrorIs(t, err, util.ErrAIUnavailable)
}

func TestJournalGetRendersMarkdown(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newTestJournalService(t, now, &model.User{ID: "u1"})

	result, err := svc.Create(context.Background(), "u1", JournalInput{Content: "Felt **calm** <script>x()</script>"})
	require.NoError(t, err)

	entry, err := svc.Get(context.Background(), "u1", result.Entry.ID)
	require.NoError(t, err)
	assert.Contains(t, entry.ContentHTML, "<strong>calm</strong>")
	assert.NotContains(t, entry.ContentHTML, "<script>")
	assert.Empty(t, repo.entries[result.Entry.ID].ContentHTML)

	_, err = svc.Get(context.Background(), "u2", result.Entry.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
