package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"wellness_backend/internal/config"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAITestServer(t *testing.T, handler func(w http.ResponseWriter, req ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func aiConfig(url string) config.AIConfig {
	return config.AIConfig{BaseURL: url + "/", APIKey: "test-key", Model: "test-model", TimeoutSeconds: 5}
}

func TestAIComplete(t *testing.T) {
	srv := newAITestServer(t, func(w http.ResponseWriter, req ChatCompletionRequest) {
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		if !assert.Len(t, req.Messages, 2) {
			return
		}
		assert.Equal(t, "system", req.Messages[0].Role)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  Keep going.  "}}]}`)
	})

	svc := NewAIService(aiConfig(srv.URL))
	reply, err := svc.Complete(context.Background(), "sys", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Keep going.", reply)
}

func TestAICompleteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`},
		{"api error", http.StatusOK, `{"error":{"message":"bad key"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"garbage", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAITestServer(t, func(w http.ResponseWriter, req ChatCompletionRequest) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			svc := NewAIService(aiConfig(srv.URL))
			_, err := svc.Complete(context.Background(), "sys", "hello")
			assert.ErrorIs(t, err, util.ErrAIUnavailable)
		})
	}
}

func TestAIDisabled(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	assert.False(t, svc.Enabled())

	_, err := svc.Complete(context.Background(), "sys", "hello")
	assert.ErrorIs(t, err, util.ErrAIUnavailable)

	out, errs := svc.ChatStream(context.Background(), "hello", nil)
	_, open := <-out
	assert.False(t, open)
	assert.ErrorIs(t, <-errs, util.ErrAIUnavailable)
}

func TestAIUpdateConfig(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	svc.UpdateConfig(config.AIConfig{BaseURL: "http://localhost", APIKey: "k"})
	assert.True(t, svc.Enabled())
}

func TestAIChatStream(t *testing.T) {
	srv := newAITestServer(t, func(w http.ResponseWriter, req ChatCompletionRequest) {
		assert.True(t, req.Stream)
		if !assert.Len(t, req.Messages, 4) {
			return
		}
		assert.Equal(t, supportSystemPrompt, req.Messages[0].Content)
		assert.Equal(t, "earlier", req.Messages[1].Content)
		assert.Equal(t, "now", req.Messages[3].Content)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" there\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	svc := NewAIService(aiConfig(srv.URL))
	history := []AIChatMessage{
		{Role: "user", Content: "earlier"},
		{Role: "assistant", Content: "reply"},
	}
	out, errs := svc.ChatStream(context.Background(), "now", history)

	var got string
	for chunk := range out {
		got += chunk
	}
	assert.NoError(t, <-errs)
	assert.Equal(t, "Hello there", got)
}

func TestAIChatStreamStatusError(t *testing.T) {
	srv := newAITestServer(t, func(w http.ResponseWriter, req ChatCompletionRequest) {
		w.WriteHeader(http.StatusBadGateway)
	})

	svc := NewAIService(aiConfig(srv.URL))
	out, errs := svc.ChatStream(context.Background(), "now", nil)
	for range out {
	}
	assert.ErrorIs(t, <-errs, util.ErrAIUnavailable)
}
