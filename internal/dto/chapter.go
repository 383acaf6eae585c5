package dto

// Chapter mirrors domain.Chapter on the wire.
type Chapter struct {
	Title   string `json:"title"`
	StartMs int64  `json:"startMs"`
}

// ChapterWindow echoes the requested generation window.
type ChapterWindow struct {
	StartMs  int64 `json:"startMs"`
	WindowMs int64 `json:"windowMs"`
}

// ChaptersRequest is the body of POST /api/chapters. Description, when
// present and parseable, wins over LLM generation.
type ChaptersRequest struct {
	Transcript     []TranscriptItem `json:"transcript"`
	Description    string           `json:"description,omitempty"`
	StartMs        int64            `json:"startMs"`
	WindowMs       int64            `json:"windowMs"`
	PreferredCount int              `json:"preferredCount,omitempty"`
}

// ChaptersResponse is the body of a successful chapter generation.
type ChaptersResponse struct {
	Chapters []Chapter     `json:"chapters"`
	Source   string        `json:"source"`
	Window   ChapterWindow `json:"window"`
}
