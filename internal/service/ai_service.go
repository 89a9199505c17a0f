package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"wellness_backend/internal/config"
	"wellness_backend/internal/util"
	"wellness_backend/pkg/logger"
	"wellness_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const supportSystemPrompt = "You are a warm, supportive wellness companion. " +
	"Offer encouragement and practical self-care ideas in plain language. " +
	"You are not a clinician: never diagnose, and suggest reaching out to a professional " +
	"or a crisis line if the user mentions being in danger."

// AIClient 供业务服务使用的 AI 能力，便于在测试中替换
type AIClient interface {
	Enabled() bool
	Complete(ctx context.Context, system, prompt string) (string, error)
	ChatStream(ctx context.Context, prompt string, history []AIChatMessage) (<-chan string, <-chan error)
}

// AIService OpenAI 兼容的 /chat/completions 客户端，配置可热更新
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg, client: &http.Client{}}
}

// UpdateConfig 配置文件变更时替换 AI 参数
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	logger.Log.Info("AI config reloaded", zap.String("model", cfg.Model), zap.Bool("enabled", cfg.Enabled()))
}

func (s *AIService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *AIService) Enabled() bool {
	return s.snapshot().Enabled()
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
	Stream   bool            `json:"stream,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"` // 流式响应
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) newRequest(ctx context.Context, cfg config.AIConfig, body ChatCompletionRequest) (*http.Request, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(cfg.BaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	return req, nil
}

// Complete 非流式调用，超时由 ai.timeout_seconds 控制
func (s *AIService) Complete(ctx context.Context, system, prompt string) (string, error) {
	cfg := s.snapshot()
	if !cfg.Enabled() {
		return "", util.ErrAIUnavailable
	}

	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	req, err := s.newRequest(ctx, cfg, ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", util.ErrAIUnavailable, resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIUnavailable, err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", util.ErrAIUnavailable, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", util.ErrAIUnavailable)
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// ChatStream 流式对话；out 关闭表示结束，错误最多发送一次
func (s *AIService) ChatStream(ctx context.Context, prompt string, history []AIChatMessage) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	cfg := s.snapshot()
	if !cfg.Enabled() {
		close(out)
		errChan <- util.ErrAIUnavailable
		close(errChan)
		return out, errChan
	}

	messages := make([]AIChatMessage, 0, len(history)+2)
	messages = append(messages, AIChatMessage{Role: "system", Content: supportSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	go func() {
		defer close(out)
		defer close(errChan)

		req, err := s.newRequest(ctx, cfg, ChatCompletionRequest{Model: cfg.Model, Messages: messages, Stream: true})
		if err != nil {
			errChan <- err
			return
		}

		resp, err := s.client.Do(req)
		if err != nil {
			errChan <- fmt.Errorf("%w: %v", util.ErrAIUnavailable, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("%w: status %d: %s", util.ErrAIUnavailable, resp.StatusCode, string(body))
			return
		}

		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					errChan <- err
				}
				return
			}

			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				return
			}

			var streamResp ChatCompletionResponse
			if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
				continue
			}

			if len(streamResp.Choices) > 0 && streamResp.Choices[0].Delta.Content != "" {
				select {
				case out <- streamResp.Choices[0].Delta.Content:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}
	}()

	return out, errChan
}

// observeAI 记录 AI 调用结果
func observeAI(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.AIRequests.WithLabelValues(operation, outcome).Inc()
}
