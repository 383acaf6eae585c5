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

// queryRefiner implements domain.QueryRefiner over the shared client.
type queryRefiner struct {
	client *Client
}

func NewQueryRefiner(client *Client) domain.QueryRefiner {
	return &queryRefiner{client: client}
}

func (r *queryRefiner) RefineQuery(ctx context.Context, query string) (string, error) {
	system := "You are an expert learning coach. Rewrite user queries for YouTube search to maximize educational relevance and clarity. Keep it concise; no punctuation if unnecessary."
	prompt := fmt.Sprintf("User query: %q\nReturn only the improved search query.", query)

	raw, err := r.client.generate(ctx, r.client.models.Search, system, prompt, 0.2)
	if err != nil {
		return "", err
	}
	refined := strings.Trim(strings.TrimSpace(raw), `"`)
	if refined == "" {
		return "", domain.NewLLMServiceError(fmt.Errorf("query refinement returned empty string"))
	}
	return refined, nil
}

// candidateRanker implements domain.CandidateRanker over the shared client.
type candidateRanker struct {
	client *Client
}

func NewCandidateRanker(client *Client) domain.CandidateRanker {
	return &candidateRanker{client: client}
}

func (r *candidateRanker) RankCandidates(ctx context.Context, refinedQuery string, candidates []domain.SearchCandidate, k int) ([]domain.SearchPick, error) {
	system := fmt.Sprintf("You are an educational curator. Given a refined topic and a list of YouTube candidates with metadata, "+
		"pick the top %d videos that best teach the topic. Balance clarity, relevance, quality, and prefer newer videos. "+
		"Diversity is optional (multiple from same channel allowed). Provide very short reasons (<=140 chars). "+
		`Respond with ONLY a JSON object: {"picks": [{"id": string, "reason": string}]}.`, k)

	payload := map[string]any{
		"refinedQuery": refinedQuery,
		"candidates":   candidates,
		"k":            k,
	}
	prompt, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewInternalError("failed to build ranking prompt", err)
	}

	raw, err := r.client.generate(ctx, r.client.models.Search, system, string(prompt), 0.2)
	if err != nil {
		return nil, err
	}

	extracted, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Picks []struct {
			ID     string `json:"id"`
			Reason string `json:"reason"`
		} `json:"picks"`
	}
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal ranking picks: %w", err))
	}

	byID := make(map[string]domain.SearchCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	picks := make([]domain.SearchPick, 0, k)
	for _, p := range parsed.Picks {
		c, ok := byID[p.ID]
		if !ok {
			logger.Get().Warn("Ranker picked unknown candidate", zap.String("id", p.ID))
			continue
		}
		picks = append(picks, domain.SearchPick{SearchCandidate: c, Reason: p.Reason})
		if len(picks) == k {
			break
		}
	}
	return picks, nil
}
