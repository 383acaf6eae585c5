package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rexdotsh/praxis/internal/cache"
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// TranscriptService fetches caption tracks with a Redis read-through cache.
type TranscriptService interface {
	GetTranscript(ctx context.Context, videoID string, lang string) ([]domain.TranscriptItem, bool, error)
	GetWindow(ctx context.Context, videoID string, lang string, currentTimeMs int64, minutes float64, maxChars int) (domain.TranscriptWindow, error)
}

type transcriptServiceImpl struct {
	fetcher domain.TranscriptFetcher
	cache   domain.Cache
	ttl     time.Duration
}

func NewTranscriptService(fetcher domain.TranscriptFetcher, cacheClient domain.Cache, ttl time.Duration) TranscriptService {
	return &transcriptServiceImpl{fetcher: fetcher, cache: cacheClient, ttl: ttl}
}

// GetTranscript returns the transcript items and whether they came from the
// cache. Cache failures degrade to a live fetch, never to an error.
func (s *transcriptServiceImpl) GetTranscript(ctx context.Context, videoID string, lang string) ([]domain.TranscriptItem, bool, error) {
	l := logger.Get()
	var key string
	if lang != "" {
		key = cache.GenerateCacheKey("transcript", "items", videoID, lang)
	} else {
		key = cache.GenerateCacheKey("transcript", "items", videoID)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var items []domain.TranscriptItem
			if unmarshalErr := json.Unmarshal([]byte(cached), &items); unmarshalErr == nil {
				return items, true, nil
			}
			l.Warn("Discarding malformed cached transcript", zap.String("videoId", videoID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Transcript cache read failed", zap.String("videoId", videoID), zap.Error(err))
		}
	}

	items, err := s.fetcher.FetchTranscript(ctx, videoID, lang)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(items); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, string(payload), s.ttl); setErr != nil {
				l.Warn("Transcript cache write failed", zap.String("videoId", videoID), zap.Error(setErr))
			}
		}
	}
	return items, false, nil
}

func (s *transcriptServiceImpl) GetWindow(ctx context.Context, videoID string, lang string, currentTimeMs int64, minutes float64, maxChars int) (domain.TranscriptWindow, error) {
	if minutes <= 0 {
		minutes = 10
	}
	items, _, err := s.GetTranscript(ctx, videoID, lang)
	if err != nil {
		return domain.TranscriptWindow{}, err
	}
	return domain.SelectWindow(items, currentTimeMs, minutes, maxChars), nil
}
