package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(out <-chan string) string {
	var sb strings.Builder
	for chunk := range out {
		sb.WriteString(chunk)
	}
	return sb.String()
}

func TestChatSendStoresBothSides(t *testing.T) {
	repo := &stubChatRepo{}
	ai := &stubAI{enabled: true, chunks: []string{"Take ", "a breath."}}
	svc := NewChatService(repo, ai, 2)
	svc.now = fixedClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	out, errs, finish, err := svc.Send(ctx, "u1", "I feel anxious")
	require.NoError(t, err)
	reply := drain(out)
	assert.NoError(t, <-errs)
	finish(reply)

	history, err := svc.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ChatRoleUser, history[0].Role)
	assert.Equal(t, model.ChatRoleAssistant, history[1].Role)
	assert.Equal(t, "Take a breath.", history[1].Content)
	assert.Equal(t, []string{"I feel anxious"}, ai.prompts)
}

func TestChatSendSkipsEmptyReply(t *testing.T) {
	repo := &stubChatRepo{}
	svc := NewChatService(repo, &stubAI{enabled: true, err: errors.New("boom")}, 0)

	out, errs, finish, err := svc.Send(context.Background(), "u1", "hello")
	require.NoError(t, err)
	reply := drain(out)
	assert.Error(t, <-errs)
	finish(reply)

	assert.Len(t, repo.messages, 1)
}

func TestChatSendDisabled(t *testing.T) {
	repo := &stubChatRepo{}
	svc := NewChatService(repo, &stubAI{}, 0)

	_, _, _, err := svc.Send(context.Background(), "u1", "hello")
	assert.ErrorIs(t, err, util.ErrAIUnavailable)
	assert.Empty(t, repo.messages)
}

func TestChatClear(t *testing.T) {
	repo := &stubChatRepo{messages: []model.ChatMessage{
		{UserID: "u1", Role: model.ChatRoleUser, Content: "a"},
		{UserID: "u2", Role: model.ChatRoleUser, Content: "b"},
	}}
	svc := NewChatService(repo, &stubAI{}, 0)

	require.NoError(t, svc.Clear(context.Background(), "u1"))
	history, err := svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Len(t, repo.messages, 1)
}
