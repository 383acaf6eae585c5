package domain

import "context"

// TranscriptFetcher retrieves the full caption track for a video.
// It fails when captions are unavailable or disabled.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoIDOrURL string, lang string) ([]TranscriptItem, error)
}

// ChapterGenerator produces chapters from a transcript excerpt.
type ChapterGenerator interface {
	GenerateChapters(ctx context.Context, transcript []TranscriptItem, preferredCount int) ([]Chapter, error)
}

// GeneratedQuestion is one LLM-produced multiple-choice question before
// persistence.
type GeneratedQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// QuizGenerationRequest bounds one question-set generation call.
type QuizGenerationRequest struct {
	TranscriptExcerpt string
	ContextSpec       ContextSpec
	NumQuestions      int
	ChoicesCount      int
	Difficulty        string
	Model             string
	Meta              QuizMeta
}

// QuizGenerator produces a schema-validated question set from a transcript
// excerpt.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, req QuizGenerationRequest) ([]GeneratedQuestion, error)
}

// SuggestionGenerator produces short clickable chat suggestions for a video.
type SuggestionGenerator interface {
	GenerateSuggestions(ctx context.Context, title, description, transcriptSample string) ([]string, error)
}

// ParsedDatesheet is the normalized output of a datesheet parse.
type ParsedDatesheet struct {
	Title string          `json:"title"`
	Items []DatesheetItem `json:"items"`
}

// DatesheetParser extracts exam entries from uploaded PDF/image URLs.
type DatesheetParser interface {
	ParseDatesheet(ctx context.Context, urls []string, allowedSubjects []string) (*ParsedDatesheet, error)
}

// ChatMessage is one turn of a grounded chat exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the conversation plus grounding context.
type ChatRequest struct {
	Messages          []ChatMessage
	Model             string
	WebSearch         bool
	TranscriptContext string
	ContextSpec       *ContextSpec
	Chapters          []Chapter
	Meta              *QuizMeta
}

// ChatModel answers a grounded chat request with a complete message.
type ChatModel interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// QueryRefiner rewrites a user query for educational YouTube search.
type QueryRefiner interface {
	RefineQuery(ctx context.Context, query string) (string, error)
}

// SearchCandidate is one raw result from the video search backend.
type SearchCandidate struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	URL               string `json:"url"`
	Channel           string `json:"channel"`
	DurationFormatted string `json:"durationFormatted,omitempty"`
	Views             int64  `json:"views,omitempty"`
	ThumbnailURL      string `json:"thumbnailUrl,omitempty"`
	UploadedAt        string `json:"-"`
}

// SearchPick is a curated candidate plus the curator's short reason.
type SearchPick struct {
	SearchCandidate
	Reason string `json:"reason,omitempty"`
}

// VideoSearcher finds candidate videos for a refined query.
type VideoSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchCandidate, error)
}

// CandidateRanker picks the top k candidates for a refined query.
type CandidateRanker interface {
	RankCandidates(ctx context.Context, refinedQuery string, candidates []SearchCandidate, k int) ([]SearchPick, error)
}

// TransactionManager runs a function within a storage transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// QuizRepository is the persistence capability behind the quiz session
// state machine. Insert/get/query calls are scoped by IDs the service
// layer has already ownership-checked or is about to check.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz, questions []QuizQuestion) error
	GetQuiz(ctx context.Context, quizID string) (*Quiz, error)
	GetQuestionsByQuiz(ctx context.Context, quizID string) ([]QuizQuestion, error)
	GetQuestion(ctx context.Context, questionID string) (*QuizQuestion, error)
	CreateSession(ctx context.Context, session *QuizSession) error
	GetSession(ctx context.Context, sessionID string) (*QuizSession, error)
	FinishSession(ctx context.Context, sessionID string, finishedAtMs int64) error
	GetAnswersBySession(ctx context.Context, sessionID string) ([]QuizAnswer, error)
	CreateAnswer(ctx context.Context, answer *QuizAnswer) error
}

// UserRepository resolves provider subjects to stable user rows.
type UserRepository interface {
	GetOrCreateBySubject(ctx context.Context, subject string) (*User, error)
}

// VideoRepository upserts video metadata keyed by YouTube ID.
type VideoRepository interface {
	UpsertByYoutubeID(ctx context.Context, video *Video) (*Video, error)
	GetByYoutubeID(ctx context.Context, youtubeID string) (*Video, error)
}

// SearchRepository records searches and curated selections.
type SearchRepository interface {
	CreateSearch(ctx context.Context, search *Search) error
	CreateSelection(ctx context.Context, selection *Selection) error
}

// DatesheetRepository persists parsed or manual datesheets per user.
type DatesheetRepository interface {
	Create(ctx context.Context, datesheet *Datesheet) error
	ListByUser(ctx context.Context, userID string) ([]Datesheet, error)
}
