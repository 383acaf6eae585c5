package models

import (
	"database/sql"
	"time"
)

// User represents an authenticated identity resolved from a provider
// subject.
type User struct {
	ID        string    `db:"id"` // ULID
	Subject   string    `db:"subject"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Video represents a YouTube video a user interacted with.
type Video struct {
	ID           string         `db:"id"` // ULID
	YoutubeID    string         `db:"youtube_id"`
	Title        string         `db:"title"`
	URL          string         `db:"url"`
	Channel      string         `db:"channel"`
	DurationMs   sql.NullInt64  `db:"duration_ms"`
	Views        sql.NullInt64  `db:"views"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Search records one search request and its refinement.
type Search struct {
	ID              string    `db:"id"` // ULID
	UserID          string    `db:"user_id"`
	Query           string    `db:"query"`
	RefinedQuery    string    `db:"refined_query"`
	CandidatesCount int       `db:"candidates_count"`
	CreatedAt       time.Time `db:"created_at"`
}

// Selection records one curated pick out of a search.
type Selection struct {
	ID       string         `db:"id"` // ULID
	UserID   string         `db:"user_id"`
	SearchID string         `db:"search_id"`
	VideoID  string         `db:"video_id"`
	Reason   sql.NullString `db:"reason"`
}
