package models

import (
	"database/sql"
	"time"
)

// Datesheet groups a user's exam entries. ItemsJSON is a JSON array of
// {subject, examDate, syllabus} objects.
type Datesheet struct {
	ID         string         `db:"id"` // ULID
	UserID     string         `db:"user_id"`
	Title      string         `db:"title"`
	SourceType string         `db:"source_type"`
	FileURL    sql.NullString `db:"file_url"`
	ItemsJSON  string         `db:"items_json"`
	Notes      sql.NullString `db:"notes"`
	CreatedAt  time.Time      `db:"created_at"`
}
