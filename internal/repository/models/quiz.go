package models

import (
	"database/sql"
	"time"
)

// Quiz represents one generated question set for a video. The context spec
// and meta are flattened into columns; question options live on the
// questions table as JSON.
type Quiz struct {
	ID              string         `db:"id"` // ULID
	VideoID         string         `db:"video_id"`
	CreatedByUserID string         `db:"created_by_user_id"`
	SpecType        string         `db:"spec_type"`
	SpecValue       int            `db:"spec_value"`
	MetaTitle       string         `db:"meta_title"`
	MetaDescription sql.NullString `db:"meta_description"`
	MetaChannel     sql.NullString `db:"meta_channel"`
	NumQuestions    int            `db:"num_questions"`
	ChoicesCount    int            `db:"choices_count"`
	Difficulty      string         `db:"difficulty"`
	Model           string         `db:"model"`
	Status          string         `db:"status"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// QuizQuestion is one question within a quiz. Position preserves generation
// order; OptionsJSON is a JSON array of option strings.
type QuizQuestion struct {
	ID           string `db:"id"` // ULID
	QuizID       string `db:"quiz_id"`
	Position     int    `db:"position"`
	Prompt       string `db:"prompt"`
	OptionsJSON  string `db:"options_json"`
	CorrectIndex int    `db:"correct_index"`
	Explanation  string `db:"explanation"`
}

// QuizSession is one user's attempt at a quiz.
type QuizSession struct {
	ID           string        `db:"id"` // ULID
	QuizID       string        `db:"quiz_id"`
	UserID       string        `db:"user_id"`
	Status       string        `db:"status"`
	StartedAtMs  int64         `db:"started_at_ms"`
	FinishedAtMs sql.NullInt64 `db:"finished_at_ms"`
}

// QuizAnswer is one recorded answer. (session_id, question_id) is unique so
// re-submissions never produce a second row.
type QuizAnswer struct {
	ID            string `db:"id"` // ULID
	SessionID     string `db:"session_id"`
	QuestionID    string `db:"question_id"`
	SelectedIndex int    `db:"selected_index"`
	IsCorrect     bool   `db:"is_correct"`
}
