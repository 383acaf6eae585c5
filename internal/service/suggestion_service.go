package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rexdotsh/praxis/internal/cache"
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SuggestionService produces chat suggestions with a per-video cache.
// Concurrent requests for the same video collapse into one generation call.
type SuggestionService interface {
	GetSuggestions(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error)
}

type suggestionServiceImpl struct {
	generator domain.SuggestionGenerator
	cache     domain.Cache
	ttl       time.Duration
	group     singleflight.Group
}

func NewSuggestionService(generator domain.SuggestionGenerator, cacheClient domain.Cache, ttl time.Duration) SuggestionService {
	return &suggestionServiceImpl{generator: generator, cache: cacheClient, ttl: ttl}
}

func (s *suggestionServiceImpl) GetSuggestions(ctx context.Context, req *dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	l := logger.Get()
	key := cache.GenerateCacheKey("suggestion", "video", req.YoutubeID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var suggestions []string
			if unmarshalErr := json.Unmarshal([]byte(cached), &suggestions); unmarshalErr == nil {
				return &dto.SuggestionsResponse{Suggestions: suggestions}, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Suggestion cache read failed", zap.String("youtubeId", req.YoutubeID), zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(req.YoutubeID, func() (interface{}, error) {
		suggestions, genErr := s.generator.GenerateSuggestions(ctx, req.Title, req.Description, req.TranscriptSample)
		if genErr != nil {
			return nil, genErr
		}
		// cache upsert failures never fail the request
		if s.cache != nil {
			if payload, marshalErr := json.Marshal(suggestions); marshalErr == nil {
				if setErr := s.cache.Set(ctx, key, string(payload), s.ttl); setErr != nil {
					l.Warn("Suggestion cache write failed", zap.String("youtubeId", req.YoutubeID), zap.Error(setErr))
				}
			}
		}
		return suggestions, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SuggestionsResponse{Suggestions: result.([]string)}, nil
}
