package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath_backend/internal/config"
)

// fakeCompletions answers chat completions requests with the last user
// message echoed back, and records what it received.
type fakeCompletions struct {
	got    chatCompletionRequest
	auth   string
	status int
}

func (f *fakeCompletions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" {
		http.NotFound(w, r)
		return
	}
	f.auth = r.Header.Get("Authorization")
	_ = json.NewDecoder(r.Body).Decode(&f.got)

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		return
	}
	last := f.got.Messages[len(f.got.Messages)-1].Content
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]string{"role": "assistant", "content": "echo: " + last}}},
	})
}

func newAIService(t *testing.T, upstream http.Handler) *AIService {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	return NewAIService(config.AIConfig{
		MaxTokens: 1000,
		OpenAI: config.AIProviderConfig{
			BaseURL: srv.URL + "/v1/",
			APIKey:  "sk-openai",
			Model:   "gpt-3.5-turbo",
			Models:  []string{"gpt-3.5-turbo"},
		},
		Claude: config.AIProviderConfig{
			BaseURL: srv.URL + "/v1",
			Model:   "claude-3-5-sonnet-20241022",
		},
	})
}

func TestAIService_ChatWithOpenAI(t *testing.T) {
	upstream := &fakeCompletions{}
	svc := newAIService(t, upstream)

	reply := svc.Chat(context.Background(), ChatRequest{Message: "How do I learn Go?", Provider: "OpenAI"})
	assert.Equal(t, ChatReply{Response: "echo: How do I learn Go?", Provider: ProviderOpenAI, Available: true}, reply)

	assert.Equal(t, "Bearer sk-openai", upstream.auth)
	assert.Equal(t, "gpt-3.5-turbo", upstream.got.Model)
	assert.Equal(t, 1000, upstream.got.MaxTokens)
	require.Len(t, upstream.got.Messages, 2)
	assert.Equal(t, "system", upstream.got.Messages[0].Role)
	assert.Equal(t, "user", upstream.got.Messages[1].Role)

	svc.Ask(context.Background(), ProviderOpenAI, ChatRequest{Message: "hi", Model: "gpt-4", MaxTokens: 50})
	assert.Equal(t, "gpt-4", upstream.got.Model)
	assert.Equal(t, 50, upstream.got.MaxTokens)
}

func TestAIService_Fallbacks(t *testing.T) {
	upstream := &fakeCompletions{}
	svc := newAIService(t, upstream)
	ctx := context.Background()

	reply := svc.Chat(ctx, ChatRequest{Message: "hi"})
	assert.Equal(t, ProviderClaude, reply.Provider, "claude is the default provider")
	assert.False(t, reply.Available)
	assert.Equal(t, "Claude API not available. Check your API key.", reply.Response)
	assert.Empty(t, upstream.auth, "no request without a key")

	reply = svc.Chat(ctx, ChatRequest{Message: "hi", Provider: "gemini"})
	assert.Equal(t, ChatReply{Response: "Invalid provider. Choose 'claude' or 'openai'", Provider: "gemini"}, reply)

	upstream.status = http.StatusTooManyRequests
	reply = svc.Ask(ctx, ProviderOpenAI, ChatRequest{Message: "hi"})
	assert.True(t, reply.Available)
	assert.Equal(t, "OpenAI Error: status 429: quota exceeded", reply.Response)
}

func TestAIService_ProvidersAndModels(t *testing.T) {
	svc := newAIService(t, http.NotFoundHandler())

	assert.Equal(t, map[string]bool{ProviderClaude: false, ProviderOpenAI: true}, svc.Providers())
	assert.Equal(t, []string{"gpt-3.5-turbo"}, svc.Models()[ProviderOpenAI])
	assert.Contains(t, svc.Models(), ProviderClaude)
}
