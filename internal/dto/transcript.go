package dto

// TranscriptItem mirrors domain.TranscriptItem on the wire.
type TranscriptItem struct {
	Text       string `json:"text"`
	StartMs    int64  `json:"startMs"`
	DurationMs int64  `json:"durationMs"`
	Lang       string `json:"lang,omitempty"`
}

// TranscriptResponse is the body of GET /api/videos/:id/transcript.
type TranscriptResponse struct {
	VideoID string           `json:"videoId"`
	Items   []TranscriptItem `json:"items"`
	Source  string           `json:"source"` // "cache" or "fetch"
}

// TranscriptWindowResponse is the body of GET /api/videos/:id/transcript/window.
type TranscriptWindowResponse struct {
	VideoID string `json:"videoId"`
	Text    string `json:"text"`
	StartMs int64  `json:"startMs"`
	EndMs   int64  `json:"endMs"`
}
