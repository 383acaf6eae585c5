package llmgen

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rexdotsh/praxis/internal/config"
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Client wraps a single OpenRouter connection shared by all generators.
// OpenRouter speaks the OpenAI chat protocol, so the openai langchaingo
// backend is pointed at its base URL and the model is chosen per call.
type Client struct {
	llm    *openai.LLM
	models config.ModelConfig
}

// NewClient connects to OpenRouter using the configured API key and base URL.
func NewClient(cfg config.OpenRouterConfig) (*Client, error) {
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Models.Chat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenRouter client: %w", err)
	}
	return &Client{llm: llm, models: cfg.Models}, nil
}

// generate runs a system+user exchange against the named model and returns
// the raw completion text.
func (c *Client) generate(ctx context.Context, model, system, prompt string, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	return c.generateMessages(ctx, model, messages, temperature)
}

func (c *Client) generateMessages(ctx context.Context, model string, messages []llms.MessageContent, temperature float64) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithModel(model),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		logger.Get().Error("LLM call failed", zap.String("model", model), zap.Error(err))
		return "", domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewLLMServiceError(fmt.Errorf("LLM returned no choices"))
	}
	return resp.Choices[0].Content, nil
}

// extractJSON pulls the JSON object out of a raw completion. Reasoning
// models sometimes wrap output in <think> blocks or prose; everything
// outside the outermost braces is discarded.
func extractJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return "", domain.NewLLMServiceError(fmt.Errorf("no JSON object found in LLM response: %s", truncate(cleaned, 200)))
	}
	return cleaned[jsonStart : jsonEnd+1], nil
}

// truncate cuts s to at most n bytes, backing off to a rune boundary so a
// multi-byte character is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
