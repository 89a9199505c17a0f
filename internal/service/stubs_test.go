package service

import (
	"context"
	"sort"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/repository"
	"wellness_backend/internal/util"
)

// stubLedger 模拟事务：回调失败或重复时不修改账本
type stubLedger struct {
	users map[string]*model.User
}

func newStubLedger(users ...*model.User) *stubLedger {
	l := &stubLedger{users: map[string]*model.User{}}
	for _, u := range users {
		l.users[u.ID] = u
	}
	return l
}

func (l *stubLedger) copyOf(id string) (*model.User, error) {
	u, ok := l.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type stubCheckInRepo struct {
	ledger   *stubLedger
	checkins []model.CheckIn
	err      error
}

func (r *stubCheckInRepo) CreateWithReward(ctx context.Context, checkin *model.CheckIn, coins int) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, err := r.ledger.copyOf(checkin.UserID)
	if err != nil {
		return nil, err
	}
	if checkin.ID == "" {
		checkin.ID = model.GenerateUUID()
	}
	r.checkins = append(r.checkins, *checkin)
	u.Coins += coins
	r.ledger.users[u.ID] = u
	return u, nil
}

func (r *stubCheckInRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.CheckIn, int64, error) {
	var out []model.CheckIn
	for _, c := range r.checkins {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *stubCheckInRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]model.CheckIn, error) {
	var out []model.CheckIn
	for _, c := range r.checkins {
		if c.UserID == userID && !c.CreatedAt.Before(since) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCheckInRepo) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	list, err := r.ListSince(ctx, userID, since)
	return int64(len(list)), err
}

type stubJournalRepo struct {
	ledger  *stubLedger
	entries map[string]*model.JournalEntry
	updated int
	deleted []string
}

func newStubJournalRepo(ledger *stubLedger) *stubJournalRepo {
	return &stubJournalRepo{ledger: ledger, entries: map[string]*model.JournalEntry{}}
}

func (r *stubJournalRepo) CreateWithReward(ctx context.Context, entry *model.JournalEntry, reward func(*model.User)) (*model.User, error) {
	u, err := r.ledger.copyOf(entry.UserID)
	if err != nil {
		return nil, err
	}
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.EntryDate == entry.EntryDate {
			return nil, util.ErrDuplicateEntry
		}
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	reward(u)
	r.ledger.users[u.ID] = u
	return u, nil
}

func (r *stubJournalRepo) FindByID(ctx context.Context, id string) (*model.JournalEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubJournalRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.JournalEntry, int64, error) {
	var out []model.JournalEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubJournalRepo) Update(ctx context.Context, entry *model.JournalEntry) error {
	cp := *entry
	r.entries[entry.ID] = &cp
	r.updated++
	return nil
}

func (r *stubJournalRepo) Delete(ctx context.Context, id string) error {
	delete(r.entries, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubLocker struct {
	busy     bool
	acquired int
	released int
}

func (l *stubLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if l.busy {
		return nil, util.ErrWriteInProgress
	}
	l.acquired++
	return func() { l.released++ }, nil
}

type stubAI struct {
	enabled bool
	reply   string
	err     error
	prompts []string
	chunks  []string
}

func (a *stubAI) Enabled() bool { return a.enabled }

func (a *stubAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func (a *stubAI) ChatStream(ctx context.Context, prompt string, history []AIChatMessage) (<-chan string, <-chan error) {
	out := make(chan string, len(a.chunks))
	errChan := make(chan error, 1)
	for _, c := range a.chunks {
		out <- c
	}
	close(out)
	if a.err != nil {
		errChan <- a.err
	}
	close(errChan)
	a.prompts = append(a.prompts, prompt)
	return out, errChan
}

type stubChatRepo struct {
	messages []model.ChatMessage
}

func (r *stubChatRepo) Append(ctx context.Context, msg *model.ChatMessage) error {
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubChatRepo) Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *stubChatRepo) Clear(ctx context.Context, userID string) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

var _ repository.ChatRepository = (*stubChatRepo)(nil)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
