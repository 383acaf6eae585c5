package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Chapter is a labeled timestamp marking a topic boundary within a video.
type Chapter struct {
	Title   string `json:"title"`
	StartMs int64  `json:"startMs"`
}

// ChapterSource tags where a chapter set came from.
type ChapterSource string

const (
	// ChapterSourceDescription marks chapters parsed from the uploader's
	// video description. Parsed once, authoritative, extended reactively.
	ChapterSourceDescription ChapterSource = "description"
	// ChapterSourceTranscript marks chapters generated from the transcript,
	// always windowed to the current playback position and near future.
	ChapterSourceTranscript ChapterSource = "transcript"
)

// MaxChapters caps a parsed or generated chapter set.
const MaxChapters = 20

// Timestamp pattern: optional hour prefix, minutes, then exactly two
// seconds digits (00-59), with optional spaces around the colons.
// The minutes group deliberately accepts values past 59 when no hour
// prefix is present ("65:00" is 65 minutes, a common description style).
var chapterTimeRe = regexp.MustCompile(`(?:(\d{1,2})\s*:\s*)?(\d{1,2})\s*:\s*([0-5]\d)`)

const (
	titleLeadingSeps  = "-–—:|)]. \t"
	titleTrailingSeps = "-–—:|([ \t"
)

// ParseChapters extracts timestamp-prefixed chapter markers from a raw
// video description. Duplicate start times keep the first occurrence; the
// result is sorted ascending by StartMs and capped at MaxChapters.
func ParseChapters(description string) []Chapter {
	seen := make(map[int64]bool)
	var chapters []Chapter

	for _, rawLine := range strings.Split(description, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		loc := chapterTimeRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		var hours int64
		if loc[2] >= 0 {
			hours, _ = strconv.ParseInt(line[loc[2]:loc[3]], 10, 64)
		}
		minutes, _ := strconv.ParseInt(line[loc[4]:loc[5]], 10, 64)
		seconds, _ := strconv.ParseInt(line[loc[6]:loc[7]], 10, 64)
		startMs := (hours*3600 + minutes*60 + seconds) * 1000

		if seen[startMs] {
			continue
		}
		seen[startMs] = true

		title := strings.TrimLeft(line[loc[1]:], titleLeadingSeps)
		if title == "" {
			title = strings.TrimRight(line[:loc[0]], titleTrailingSeps)
		}
		if title == "" {
			title = "Chapter " + FormatTimestamp(startMs)
		}

		chapters = append(chapters, Chapter{Title: title, StartMs: startMs})
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].StartMs < chapters[j].StartMs
	})
	if len(chapters) > MaxChapters {
		chapters = chapters[:MaxChapters]
	}
	return chapters
}

// MergeChapters folds incoming chapters into existing ones keyed by
// StartMs; incoming entries win ties. The result is sorted ascending.
func MergeChapters(existing, incoming []Chapter) []Chapter {
	byStart := make(map[int64]Chapter, len(existing)+len(incoming))
	for _, c := range existing {
		byStart[c.StartMs] = c
	}
	for _, c := range incoming {
		byStart[c.StartMs] = c
	}

	merged := make([]Chapter, 0, len(byStart))
	for _, c := range byStart {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].StartMs < merged[j].StartMs
	})
	return merged
}

// FormatTimestamp renders milliseconds as H:MM:SS, or M:SS under an hour.
func FormatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ChapterRequestDebounceMs suppresses re-requests anchored within this
// distance of the last requested anchor.
const ChapterRequestDebounceMs = 30_000

// ChapterPlanner decides when a new chapter window should be requested
// from the generation backend as playback advances. It tracks only the
// single most recent requested anchor, not a history.
type ChapterPlanner struct {
	lastRequestedStartMs int64
	hasRequested         bool
}

// NewChapterPlanner returns a planner with no prior request recorded.
func NewChapterPlanner() *ChapterPlanner {
	return &ChapterPlanner{}
}

// Plan reports whether a new chapter window should be requested for the
// given playback position, and at what anchor. A granted request is
// recorded for debouncing.
func (p *ChapterPlanner) Plan(chapters []Chapter, source ChapterSource, currentTimeMs int64) (int64, bool) {
	switch source {
	case ChapterSourceTranscript:
		upcoming := 0
		for _, c := range chapters {
			if c.StartMs >= currentTimeMs {
				upcoming++
			}
		}
		if upcoming > 1 {
			return 0, false
		}
	case ChapterSourceDescription:
		var maxKnown int64
		for _, c := range chapters {
			if c.StartMs > maxKnown {
				maxKnown = c.StartMs
			}
		}
		if currentTimeMs <= maxKnown {
			return 0, false
		}
	default:
		return 0, false
	}

	anchor := currentTimeMs
	if anchor < 0 {
		anchor = 0
	}
	if p.hasRequested {
		delta := anchor - p.lastRequestedStartMs
		if delta < 0 {
			delta = -delta
		}
		if delta <= ChapterRequestDebounceMs {
			return 0, false
		}
	}

	p.lastRequestedStartMs = anchor
	p.hasRequested = true
	return anchor, true
}
