package service

import (
	"context"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
)

// ChatService answers transcript-grounded chat requests.
type ChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatServiceImpl struct {
	model domain.ChatModel
}

func NewChatService(model domain.ChatModel) ChatService {
	return &chatServiceImpl{model: model}
}

func (s *chatServiceImpl) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("messages")}
	}
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("messages.role", m.Role)}
		}
		if strings.TrimSpace(m.Content) == "" {
			return nil, domain.ValidationErrors{domain.NewMissingFieldError("messages.content")}
		}
	}

	domainReq := domain.ChatRequest{
		Model:             req.Model,
		WebSearch:         req.WebSearch,
		TranscriptContext: req.TranscriptContext,
	}
	for _, m := range req.Messages {
		domainReq.Messages = append(domainReq.Messages, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}
	if req.ContextSpec != nil {
		domainReq.ContextSpec = &domain.ContextSpec{Type: req.ContextSpec.Type, Value: req.ContextSpec.Value}
	}
	for _, c := range req.Chapters {
		domainReq.Chapters = append(domainReq.Chapters, domain.Chapter{Title: c.Title, StartMs: c.StartMs})
	}
	if req.Meta != nil {
		domainReq.Meta = &domain.QuizMeta{
			Title:       req.Meta.Title,
			Description: req.Meta.Description,
			Channel:     req.Meta.Channel,
		}
	}

	message, err := s.model.Chat(ctx, domainReq)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{Message: message}, nil
}
