package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"skillpath_backend/internal/config"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/tracing"
)

const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"

	defaultAITimeout = 60 * time.Second
	maxErrorBody     = 4 << 10
)

const assistantPrompt = "You are the SkillPath career assistant. Help the user understand skill gaps, " +
	"plan what to learn next, prepare for interviews and improve their resume. Keep answers practical and concise."

var providerNames = map[string]string{
	ProviderClaude: "Claude",
	ProviderOpenAI: "OpenAI",
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string          `json:"model"`
	Messages  []AIChatMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatRequest is a single question for the assistant.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	Provider  string `json:"provider" example:"claude"`
	MaxTokens int    `json:"max_tokens" binding:"omitempty,min=1,max=8192"`
	Model     string `json:"model"`
}

// ChatReply always carries a printable answer. Provider failures are
// reported in Response with Available telling whether the provider is
// configured at all.
type ChatReply struct {
	Response  string `json:"response"`
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}

// AIService talks to OpenAI compatible chat completions APIs. Claude is
// reached through Anthropic's compatible endpoint.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	return &AIService{config: cfg, client: &http.Client{Timeout: timeout}}
}

func (s *AIService) provider(name string) (config.AIProviderConfig, bool) {
	switch name {
	case ProviderClaude:
		return s.config.Claude, true
	case ProviderOpenAI:
		return s.config.OpenAI, true
	}
	return config.AIProviderConfig{}, false
}

// Providers reports which providers have an API key.
func (s *AIService) Providers() map[string]bool {
	return map[string]bool{
		ProviderClaude: s.config.Claude.APIKey != "",
		ProviderOpenAI: s.config.OpenAI.APIKey != "",
	}
}

func (s *AIService) Models() map[string][]string {
	return map[string][]string{
		ProviderClaude: s.config.Claude.Models,
		ProviderOpenAI: s.config.OpenAI.Models,
	}
}

// Chat answers with the provider named in req, Claude when none is given.
func (s *AIService) Chat(ctx context.Context, req ChatRequest) ChatReply {
	name := strings.ToLower(strings.TrimSpace(req.Provider))
	if name == "" {
		name = ProviderClaude
	}
	if _, ok := s.provider(name); !ok {
		return ChatReply{
			Response: "Invalid provider. Choose 'claude' or 'openai'",
			Provider: req.Provider,
		}
	}
	return s.Ask(ctx, name, req)
}

// Ask answers with the given provider. req.Provider is ignored.
func (s *AIService) Ask(ctx context.Context, name string, req ChatRequest) ChatReply {
	p, ok := s.provider(name)
	if !ok {
		return ChatReply{Response: "Invalid provider. Choose 'claude' or 'openai'", Provider: name}
	}
	reply := ChatReply{Provider: name, Available: p.APIKey != ""}
	if !reply.Available {
		monitoring.AIRequests.WithLabelValues(name, "unavailable").Inc()
		reply.Response = providerNames[name] + " API not available. Check your API key."
		return reply
	}

	ctx, span := tracing.StartSpan(ctx, "ai.chat", attribute.String("ai.provider", name))
	defer span.End()

	answer, err := s.complete(ctx, p, req)
	if err != nil {
		tracing.RecordError(span, err)
		monitoring.AIRequests.WithLabelValues(name, "error").Inc()
		logger.Log.Warn("AI provider request failed", zap.String("provider", name), zap.Error(err))
		reply.Response = fmt.Sprintf("%s Error: %v", providerNames[name], err)
		return reply
	}
	monitoring.AIRequests.WithLabelValues(name, "ok").Inc()
	reply.Response = answer
	return reply
}

func (s *AIService) complete(ctx context.Context, p config.AIProviderConfig, req ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.MaxTokens
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []AIChatMessage{
			{Role: "system", Content: assistantPrompt},
			{Role: "user", Content: req.Message},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(p.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out chatCompletionResponse
	decodeErr := json.Unmarshal(data, &out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, maxErrorBody))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Error != nil {
		return "", errors.New(out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return strings.TrimSpace(string(b))
}
