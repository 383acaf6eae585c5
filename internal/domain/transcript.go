package domain

// TranscriptItem is a single caption segment of a video transcript.
// Items are ordered ascending by StartMs and immutable once fetched.
type TranscriptItem struct {
	Text       string `json:"text"`
	StartMs    int64  `json:"startMs"`
	DurationMs int64  `json:"durationMs"`
	Lang       string `json:"lang,omitempty"`
}

// TranscriptWindow is a time-bounded slice of caption text ending at the
// current playback position.
type TranscriptWindow struct {
	Text    string `json:"text"`
	StartMs int64  `json:"startMs"`
	EndMs   int64  `json:"endMs"`
}

const (
	// MinPlaybackMs gates context use until enough video has played.
	MinPlaybackMs = 5 * 60 * 1000

	// DefaultWindowMaxChars caps the concatenated window text.
	DefaultWindowMaxChars = 24000
)

// SelectWindow returns the contiguous transcript slice covering the last
// `minutes` of playback before currentTimeMs.
//
// Items are selected when their interval [StartMs, StartMs+DurationMs)
// overlaps the requested window, and concatenated with single spaces until
// adding the next whole item would exceed maxChars. The returned bounds are
// those of the first and last selected item; when nothing is selected they
// fall back to the requested window bounds.
func SelectWindow(transcript []TranscriptItem, currentTimeMs int64, minutes float64, maxChars int) TranscriptWindow {
	if maxChars <= 0 {
		maxChars = DefaultWindowMaxChars
	}
	if len(transcript) == 0 {
		return TranscriptWindow{Text: "", StartMs: 0, EndMs: 0}
	}
	if currentTimeMs < MinPlaybackMs {
		return TranscriptWindow{Text: "", StartMs: 0, EndMs: currentTimeMs}
	}

	windowStart := currentTimeMs - int64(minutes*60*1000)
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := currentTimeMs

	var slice []TranscriptItem
	for _, t := range transcript {
		tEnd := t.StartMs + t.DurationMs
		if tEnd >= windowStart && t.StartMs <= windowEnd {
			slice = append(slice, t)
		}
	}

	startMs := windowStart
	endMs := windowEnd
	if len(slice) > 0 {
		startMs = slice[0].StartMs
		last := slice[len(slice)-1]
		endMs = last.StartMs + last.DurationMs
	}

	var b []byte
	for _, t := range slice {
		if len(b)+len(t.Text)+1 > maxChars {
			break
		}
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, t.Text...)
	}

	return TranscriptWindow{Text: string(b), StartMs: startMs, EndMs: endMs}
}
