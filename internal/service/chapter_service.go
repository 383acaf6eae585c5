package service

import (
	"context"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// ChapterService produces chapters for a playback window. A parseable
// description is authoritative; otherwise the transcript slice covering the
// requested window is handed to the LLM generator.
type ChapterService interface {
	GenerateChapters(ctx context.Context, req *dto.ChaptersRequest) (*dto.ChaptersResponse, error)
}

type chapterServiceImpl struct {
	generator domain.ChapterGenerator
}

func NewChapterService(generator domain.ChapterGenerator) ChapterService {
	return &chapterServiceImpl{generator: generator}
}

func (s *chapterServiceImpl) GenerateChapters(ctx context.Context, req *dto.ChaptersRequest) (*dto.ChaptersResponse, error) {
	window := dto.ChapterWindow{StartMs: req.StartMs, WindowMs: req.WindowMs}

	if req.Description != "" {
		if parsed := domain.ParseChapters(req.Description); len(parsed) > 0 {
			logger.Get().Debug("Chapters parsed from description", zap.Int("chapters", len(parsed)))
			return &dto.ChaptersResponse{
				Chapters: toDTOChapters(parsed),
				Source:   string(domain.ChapterSourceDescription),
				Window:   window,
			}, nil
		}
	}

	transcript := toDomainTranscript(req.Transcript)
	if req.WindowMs > 0 {
		transcript = sliceTranscriptWindow(transcript, req.StartMs, req.WindowMs)
	}
	if len(transcript) == 0 {
		return nil, domain.NewInvalidInputError("no transcript items cover the requested window")
	}

	generated, err := s.generator.GenerateChapters(ctx, transcript, req.PreferredCount)
	if err != nil {
		return nil, err
	}

	return &dto.ChaptersResponse{
		Chapters: toDTOChapters(generated),
		Source:   string(domain.ChapterSourceTranscript),
		Window:   window,
	}, nil
}

// sliceTranscriptWindow keeps items whose interval overlaps
// [startMs, startMs+windowMs].
func sliceTranscriptWindow(items []domain.TranscriptItem, startMs, windowMs int64) []domain.TranscriptItem {
	endMs := startMs + windowMs
	out := make([]domain.TranscriptItem, 0, len(items))
	for _, it := range items {
		itemEnd := it.StartMs + it.DurationMs
		if itemEnd >= startMs && it.StartMs <= endMs {
			out = append(out, it)
		}
	}
	return out
}

func toDomainTranscript(items []dto.TranscriptItem) []domain.TranscriptItem {
	out := make([]domain.TranscriptItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.TranscriptItem{
			Text:       it.Text,
			StartMs:    it.StartMs,
			DurationMs: it.DurationMs,
			Lang:       it.Lang,
		})
	}
	return out
}

func toDTOChapters(chapters []domain.Chapter) []dto.Chapter {
	out := make([]dto.Chapter, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, dto.Chapter{Title: c.Title, StartMs: c.StartMs})
	}
	return out
}
