package domain

import (
	"fmt"
	"time"
)

// Quiz spec scope selectors.
const (
	QuizScopeLastMinutes = "last_minutes"
	QuizScopeLastChapter = "last_chapter"
)

// Quiz difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Quiz statuses.
const (
	QuizStatusActive   = "active"
	QuizStatusArchived = "archived"
)

// Session statuses.
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// Question shape bounds.
const (
	MinQuizQuestions = 3
	MaxQuizQuestions = 10
	QuizChoicesCount = 4
)

// ContextSpec is the scope selector used to bound transcript context for a
// generation request.
type ContextSpec struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// QuizMeta carries the video metadata a quiz was generated against.
type QuizMeta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

// Quiz is one generated question set for a video.
type Quiz struct {
	ID              string
	CreatedByUserID string
	VideoID         string
	Spec            ContextSpec
	Meta            QuizMeta
	NumQuestions    int
	ChoicesCount    int
	Difficulty      string
	Model           string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuizQuestion is immutable once created and owned by its quiz.
// Position preserves the generation order used by the next-question walk.
type QuizQuestion struct {
	ID           string
	QuizID       string
	Position     int
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Validate checks a generated question's shape before persistence.
func (q *QuizQuestion) Validate() error {
	if q.Prompt == "" {
		return NewInvalidInputError("question prompt is required")
	}
	if len(q.Options) != QuizChoicesCount {
		return NewInvalidInputError(fmt.Sprintf("question must have exactly %d options", QuizChoicesCount))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return NewInvalidInputError("question correct index is out of range")
	}
	return nil
}

// QuizSession is one user's attempt at a quiz. Nothing in the model
// prevents multiple concurrent sessions per (quiz, user); the client only
// ever creates one.
type QuizSession struct {
	ID           string
	QuizID       string
	UserID       string
	Status       string
	StartedAtMs  int64
	FinishedAtMs int64
}

// QuizAnswer records one answer within a session. At most one answer
// exists per (session, question); re-submissions are acknowledged without
// inserting.
type QuizAnswer struct {
	ID            string
	SessionID     string
	QuestionID    string
	SelectedIndex int
	IsCorrect     bool
}

// ValidateContextSpec rejects unknown scope types and non-positive values.
func ValidateContextSpec(spec ContextSpec) error {
	if spec.Type != QuizScopeLastMinutes && spec.Type != QuizScopeLastChapter {
		return NewInvalidInputError(fmt.Sprintf("unknown context spec type: %s", spec.Type))
	}
	if spec.Value <= 0 {
		return NewInvalidInputError("context spec value must be positive")
	}
	return nil
}

// ValidateDifficulty rejects unknown difficulty levels.
func ValidateDifficulty(difficulty string) error {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	}
	return NewInvalidInputError(fmt.Sprintf("unknown difficulty: %s", difficulty))
}
