package llmgen

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// webSearchModel is substituted when the caller enables web search. It is a
// search-grounded model on OpenRouter.
const webSearchModel = "perplexity/sonar"

// metaDescriptionLimit caps the video description in the chat grounding
// block.
const metaDescriptionLimit = 1000

// chatModel implements domain.ChatModel over the shared client.
type chatModel struct {
	client *Client
}

func NewChatModel(client *Client) domain.ChatModel {
	return &chatModel{client: client}
}

func (m *chatModel) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	system := strings.Join([]string{
		"You are an AI learning companion for a YouTube video.",
		"You ALWAYS respond in English, regardless of the user input or transcript language.",
		"Primary context is the provided transcript slice and chapters. Use them to ground your answers.",
		"If the user asks about the video, prioritize answering their question directly, using transcript evidence as support.",
		"If the question is outside the transcript, say so briefly; if web search is enabled you may incorporate sources and cite them.",
		"Be concise, clear, and instructional. Prefer bullet points where appropriate.",
		"Translate any quoted transcript content into English before presenting it.",
	}, " ")

	messages := make([]llms.MessageContent, 0, len(req.Messages)+2)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, system))
	for _, msg := range req.Messages {
		role := schema.ChatMessageTypeHuman
		if msg.Role == "assistant" {
			role = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}

	if boost := buildGroundingBoost(req); boost != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, boost))
	}

	model := req.Model
	if req.WebSearch {
		model = webSearchModel
	}
	if model == "" {
		model = m.client.models.Chat
	}

	reply, err := m.client.generateMessages(ctx, model, messages, 0.7)
	if err != nil {
		return "", err
	}

	logger.Get().Debug("Chat completed",
		zap.String("model", model),
		zap.Int("messages", len(req.Messages)),
		zap.Bool("webSearch", req.WebSearch))
	return reply, nil
}

// buildGroundingBoost appends the transcript window, chapter list, and video
// metadata as one trailing user message, mirroring how the front end frames
// its grounding context.
func buildGroundingBoost(req domain.ChatRequest) string {
	var sb strings.Builder

	if req.TranscriptContext != "" {
		specType := "minutes"
		specValue := "?"
		if req.ContextSpec != nil {
			specType = req.ContextSpec.Type
			specValue = fmt.Sprintf("%d", req.ContextSpec.Value)
		}
		fmt.Fprintf(&sb, "\n\n[Context Window (%s:%s):]\n%s", specType, specValue, req.TranscriptContext)
	}

	if len(req.Chapters) > 0 {
		sb.WriteString("\n\n[Chapters]\n")
		for i, c := range req.Chapters {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "- %s @ %ds", c.Title, int64(math.Round(float64(c.StartMs)/1000)))
		}
	}

	if sb.Len() == 0 {
		return ""
	}

	if req.Meta != nil {
		fmt.Fprintf(&sb, "\n\n[Video Meta]\nTitle: %s\nChannel: %s\nDescription: %s",
			req.Meta.Title, req.Meta.Channel, truncate(req.Meta.Description, metaDescriptionLimit))
	}
	return sb.String()
}
