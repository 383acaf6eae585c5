package llmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
)

// suggestionSampleLimit caps the transcript sample in the suggestion prompt.
const suggestionSampleLimit = 4000

// SuggestionCount is the fixed number of chat suggestions per video.
const SuggestionCount = 5

// suggestionGenerator implements domain.SuggestionGenerator over the shared
// client.
type suggestionGenerator struct {
	client *Client
}

func NewSuggestionGenerator(client *Client) domain.SuggestionGenerator {
	return &suggestionGenerator{client: client}
}

func (g *suggestionGenerator) GenerateSuggestions(ctx context.Context, title, description, transcriptSample string) ([]string, error) {
	system := fmt.Sprintf("You generate %d short, clickable suggestions for a learning chat about a YouTube video. ", SuggestionCount) +
		`Respond with ONLY a JSON object: {"suggestions": [string]}.`

	parts := []string{"Title: " + title}
	if description != "" {
		parts = append(parts, "Description: "+description)
	}
	if transcriptSample != "" {
		parts = append(parts, "Transcript sample: "+truncate(transcriptSample, suggestionSampleLimit))
	}
	parts = append(parts, "Return diverse, brief suggestions (under 80 chars). No numbering, no punctuation at end.")
	prompt := strings.Join(parts, "\n")

	raw, err := g.client.generate(ctx, g.client.models.Chapters, system, prompt, 0.4)
	if err != nil {
		return nil, err
	}

	extracted, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal suggestions: %w", err))
	}
	if len(parsed.Suggestions) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM returned no suggestions"))
	}
	if len(parsed.Suggestions) > SuggestionCount {
		parsed.Suggestions = parsed.Suggestions[:SuggestionCount]
	}
	return parsed.Suggestions, nil
}
