package service

import (
	"context"
	"strings"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/repository"
	"wellness_backend/internal/util"
	"wellness_backend/pkg/logger"

	"go.uber.org/zap"
)

const defaultChatHistory = 20

// ChatService AI 支持对话：保存双方消息，携带最近的历史轮次请求流式回复
type ChatService struct {
	repo    repository.ChatRepository
	ai      AIClient
	history int
	now     func() time.Time
}

func NewChatService(repo repository.ChatRepository, ai AIClient, history int) *ChatService {
	if history <= 0 {
		history = defaultChatHistory
	}
	return &ChatService{repo: repo, ai: ai, history: history, now: time.Now}
}

func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.Recent(ctx, userID, limit)
}

func (s *ChatService) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

// Send 保存用户消息并返回回复流。流结束后由 finish 保存助手消息。
func (s *ChatService) Send(ctx context.Context, userID, content string) (<-chan string, <-chan error, func(reply string), error) {
	if s.ai == nil || !s.ai.Enabled() {
		return nil, nil, nil, util.ErrAIUnavailable
	}

	history, err := s.repo.Recent(ctx, userID, s.history)
	if err != nil {
		return nil, nil, nil, err
	}

	userMsg := &model.ChatMessage{UserID: userID, Role: model.ChatRoleUser, Content: content}
	userMsg.CreatedAt = s.now()
	if err := s.repo.Append(ctx, userMsg); err != nil {
		return nil, nil, nil, err
	}

	turns := make([]AIChatMessage, 0, len(history))
	for _, m := range history {
		turns = append(turns, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	out, errs := s.ai.ChatStream(ctx, content, turns)

	finish := func(reply string) {
		reply = strings.TrimSpace(reply)
		if reply == "" {
			return
		}
		msg := &model.ChatMessage{UserID: userID, Role: model.ChatRoleAssistant, Content: reply}
		msg.CreatedAt = s.now()
		// 客户端断开后仍然保存已生成的部分
		if err := s.repo.Append(context.Background(), msg); err != nil {
			logger.Log.Error("Failed to save assistant message", zap.String("userID", userID), zap.Error(err))
		}
	}

	return out, errs, finish, nil
}
