package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rexdotsh/praxis/internal/adapter/youtube"
	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

const (
	// maxSearchCandidates bounds the raw scrape before ranking.
	maxSearchCandidates = 25
	// finalSearchPicks is the curated result count.
	finalSearchPicks = 5
	// maxCandidateAge filters out stale uploads.
	maxCandidateAge = 3 * 365 * 24 * time.Hour
)

// SearchService refines a query, scrapes candidates, curates the top picks,
// and records the search per user.
type SearchService interface {
	Search(ctx context.Context, userID string, query string) (*dto.SearchResponse, error)
}

type searchServiceImpl struct {
	refiner    domain.QueryRefiner
	searcher   domain.VideoSearcher
	ranker     domain.CandidateRanker
	searchRepo domain.SearchRepository
	videoRepo  domain.VideoRepository
	ageFilter  func(candidate domain.SearchCandidate) bool
}

func NewSearchService(
	refiner domain.QueryRefiner,
	searcher domain.VideoSearcher,
	ranker domain.CandidateRanker,
	searchRepo domain.SearchRepository,
	videoRepo domain.VideoRepository,
) SearchService {
	return &searchServiceImpl{
		refiner:    refiner,
		searcher:   searcher,
		ranker:     ranker,
		searchRepo: searchRepo,
		videoRepo:  videoRepo,
		ageFilter:  defaultAgeFilter,
	}
}

func (s *searchServiceImpl) Search(ctx context.Context, userID string, query string) (*dto.SearchResponse, error) {
	l := logger.Get()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewInvalidInputError("query is required")
	}

	refined, err := s.refiner.RefineQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	raw, err := s.searcher.Search(ctx, refined, maxSearchCandidates)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.SearchCandidate, 0, len(raw))
	for _, c := range raw {
		if s.ageFilter(c) {
			candidates = append(candidates, c)
		}
	}

	picks, err := s.ranker.RankCandidates(ctx, refined, candidates, finalSearchPicks)
	if err != nil || len(picks) != finalSearchPicks {
		if err != nil {
			l.Warn("Candidate ranking failed, falling back to view sort", zap.Error(err))
		}
		picks = fallbackPicks(candidates)
	}

	s.persistSearch(ctx, userID, query, refined, len(candidates), picks)

	return &dto.SearchResponse{
		RefinedQuery:    refined,
		CandidatesCount: len(candidates),
		Picks:           toDTOPicks(picks),
	}, nil
}

// defaultAgeFilter keeps candidates uploaded within the last three years.
// Candidates without a parseable upload age pass through.
func defaultAgeFilter(c domain.SearchCandidate) bool {
	now := time.Now()
	uploadedAtMs := youtube.ParseUploadedAtToMs(c.UploadedAt, now)
	if uploadedAtMs == 0 {
		return true
	}
	return uploadedAtMs >= now.Add(-maxCandidateAge).UnixMilli()
}

// fallbackPicks is the heuristic top list when the ranking call fails or
// returns short: most-viewed first.
func fallbackPicks(candidates []domain.SearchCandidate) []domain.SearchPick {
	sorted := make([]domain.SearchCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	if len(sorted) > finalSearchPicks {
		sorted = sorted[:finalSearchPicks]
	}
	picks := make([]domain.SearchPick, 0, len(sorted))
	for _, c := range sorted {
		picks = append(picks, domain.SearchPick{SearchCandidate: c})
	}
	return picks
}

// persistSearch records the search, upserts the picked videos, and records
// selections. Persistence failures are logged and swallowed so the search
// response still reaches the client.
func (s *searchServiceImpl) persistSearch(ctx context.Context, userID, query, refined string, candidatesCount int, picks []domain.SearchPick) {
	l := logger.Get()

	search := &domain.Search{
		UserID:          userID,
		Query:           query,
		RefinedQuery:    refined,
		CandidatesCount: candidatesCount,
	}
	if err := s.searchRepo.CreateSearch(ctx, search); err != nil {
		l.Warn("Failed to persist search", zap.Error(err))
		return
	}

	for _, p := range picks {
		video, err := s.videoRepo.UpsertByYoutubeID(ctx, &domain.Video{
			YoutubeID:    p.ID,
			Title:        p.Title,
			URL:          p.URL,
			Channel:      p.Channel,
			Views:        p.Views,
			ThumbnailURL: p.ThumbnailURL,
		})
		if err != nil {
			l.Warn("Failed to upsert picked video", zap.String("youtubeId", p.ID), zap.Error(err))
			continue
		}
		if err := s.searchRepo.CreateSelection(ctx, &domain.Selection{
			UserID:   userID,
			SearchID: search.ID,
			VideoID:  video.ID,
			Reason:   p.Reason,
		}); err != nil {
			l.Warn("Failed to persist selection", zap.String("youtubeId", p.ID), zap.Error(err))
		}
	}
}

func toDTOPicks(picks []domain.SearchPick) []dto.SearchPick {
	out := make([]dto.SearchPick, 0, len(picks))
	for _, p := range picks {
		out = append(out, dto.SearchPick{
			ID:                p.ID,
			Title:             p.Title,
			URL:               p.URL,
			Channel:           p.Channel,
			DurationFormatted: p.DurationFormatted,
			Views:             p.Views,
			ThumbnailURL:      p.ThumbnailURL,
			Reason:            p.Reason,
		})
	}
	return out
}
