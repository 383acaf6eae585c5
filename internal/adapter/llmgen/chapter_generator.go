package llmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// chapterTranscriptLimit caps how many transcript items feed the chapter
// prompt.
const chapterTranscriptLimit = 2000

// chapterGenerator implements domain.ChapterGenerator over the shared client.
type chapterGenerator struct {
	client *Client
}

func NewChapterGenerator(client *Client) domain.ChapterGenerator {
	return &chapterGenerator{client: client}
}

func (g *chapterGenerator) GenerateChapters(ctx context.Context, transcript []domain.TranscriptItem, preferredCount int) ([]domain.Chapter, error) {
	if preferredCount <= 0 {
		preferredCount = 6
	}

	items := transcript
	if len(items) > chapterTranscriptLimit {
		items = items[:chapterTranscriptLimit]
	}
	var sb strings.Builder
	for i, t := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%ds] %s", int64(math.Round(float64(t.StartMs)/1000)), t.Text)
	}

	system := "Create concise YouTube chapters from transcript with accurate start times. " +
		`Respond with ONLY a JSON object: {"chapters": [{"title": string, "startMs": number}]} with between 3 and 20 chapters.`
	prompt := fmt.Sprintf("Preferred chapters: %d. Transcript excerpt (time-tagged):\n%s\nReturn JSON.", preferredCount, sb.String())

	raw, err := g.client.generate(ctx, g.client.models.Chapters, system, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	extracted, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Chapters []domain.Chapter `json:"chapters"`
	}
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal chapters: %w", err))
	}
	if len(parsed.Chapters) < 3 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("expected at least 3 chapters, got %d", len(parsed.Chapters)))
	}
	if len(parsed.Chapters) > domain.MaxChapters {
		parsed.Chapters = parsed.Chapters[:domain.MaxChapters]
	}
	for i, ch := range parsed.Chapters {
		if ch.StartMs < 0 {
			return nil, domain.NewLLMServiceError(fmt.Errorf("chapter %d has negative startMs", i))
		}
	}

	logger.Get().Info("Generated chapters",
		zap.Int("chapters", len(parsed.Chapters)),
		zap.Int("transcriptItems", len(items)))
	return parsed.Chapters, nil
}
