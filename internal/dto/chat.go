package dto

// ChatMessage is one conversation turn on the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages          []ChatMessage `json:"messages"`
	Model             string        `json:"model,omitempty"`
	WebSearch         bool          `json:"webSearch,omitempty"`
	TranscriptContext string        `json:"transcriptContext,omitempty"`
	ContextSpec       *ContextSpec  `json:"contextSpec,omitempty"`
	Chapters          []Chapter     `json:"chapters,omitempty"`
	Meta              *QuizMeta     `json:"meta,omitempty"`
}

// ChatResponse carries the complete assistant reply.
type ChatResponse struct {
	Message string `json:"message"`
}

// SuggestionsRequest is the body of POST /api/suggestions.
type SuggestionsRequest struct {
	YoutubeID        string `json:"youtubeId"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	TranscriptSample string `json:"transcriptSample,omitempty"`
}

// SuggestionsResponse is the body of a successful suggestion call.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
