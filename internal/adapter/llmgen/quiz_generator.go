package llmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// transcriptExcerptLimit caps how much transcript text goes into the quiz
// prompt.
const transcriptExcerptLimit = 8000

// quizGenerator implements domain.QuizGenerator over the shared client.
type quizGenerator struct {
	client *Client
}

func NewQuizGenerator(client *Client) domain.QuizGenerator {
	return &quizGenerator{client: client}
}

func (g *quizGenerator) GenerateQuestions(ctx context.Context, req domain.QuizGenerationRequest) ([]domain.GeneratedQuestion, error) {
	l := logger.Get()

	system := strings.Join([]string{
		fmt.Sprintf("Write %d MCQs, %d options each. English. Use only the transcript excerpt.", req.NumQuestions, req.ChoicesCount),
		"Stem: ≤20 words. Options: short.",
		"Exactly 1 correct; others plausible and mutually exclusive.",
		"No 'All of the above'/'None of the above'. No overlaps.",
		fmt.Sprintf(`Match "%s" difficulty. Use exact terms/values from the excerpt (numbers, units, names).`, req.Difficulty),
		"Explanation: 1 short sentence citing the excerpt.",
		"Do not mention the transcript or that the questions were generated from it.",
		`Respond with ONLY a JSON object: {"questions": [{"prompt": string, "options": [string], "correctIndex": number, "explanation": string}]}.`,
	}, "\n")

	excerpt := truncate(req.TranscriptExcerpt, transcriptExcerptLimit)

	promptPayload := map[string]any{
		"contextSpec":       req.ContextSpec,
		"transcriptExcerpt": excerpt,
		"difficulty":        req.Difficulty,
		"choicesCount":      req.ChoicesCount,
		"numQuestions":      req.NumQuestions,
		"meta": map[string]string{
			"title":       req.Meta.Title,
			"channel":     req.Meta.Channel,
			"description": req.Meta.Description,
		},
	}
	prompt, err := json.Marshal(promptPayload)
	if err != nil {
		return nil, domain.NewInternalError("failed to build quiz prompt", err)
	}

	model := req.Model
	if model == "" {
		model = g.client.models.Quiz
	}

	raw, err := g.client.generate(ctx, model, system, string(prompt), 0.3)
	if err != nil {
		return nil, err
	}

	extracted, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []domain.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		l.Error("Failed to unmarshal quiz generation response",
			zap.Error(err),
			zap.String("extracted_json", truncate(extracted, 500)))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal quiz questions: %w", err))
	}

	if err := validateGeneratedQuestions(parsed.Questions, req.ChoicesCount); err != nil {
		return nil, err
	}

	l.Info("Generated quiz questions",
		zap.String("model", model),
		zap.Int("questions", len(parsed.Questions)))
	return parsed.Questions, nil
}

// validateGeneratedQuestions enforces the question-set schema before anything
// is persisted.
func validateGeneratedQuestions(questions []domain.GeneratedQuestion, choicesCount int) error {
	if len(questions) < domain.MinQuizQuestions || len(questions) > domain.MaxQuizQuestions {
		return domain.NewLLMServiceError(fmt.Errorf("expected between %d and %d questions, got %d",
			domain.MinQuizQuestions, domain.MaxQuizQuestions, len(questions)))
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return domain.NewLLMServiceError(fmt.Errorf("question %d has an empty prompt", i))
		}
		if len(q.Options) != choicesCount {
			return domain.NewLLMServiceError(fmt.Errorf("question %d has %d options, want %d", i, len(q.Options), choicesCount))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= choicesCount {
			return domain.NewLLMServiceError(fmt.Errorf("question %d has correctIndex %d out of range", i, q.CorrectIndex))
		}
	}
	return nil
}
