package domain

import (
	"strings"
	"time"
)

// User is a resolved identity subject from the external provider.
type User struct {
	ID        string
	Subject   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Video is a YouTube video a user interacted with.
type Video struct {
	ID           string
	YoutubeID    string
	Title        string
	URL          string
	Channel      string
	DurationMs   int64
	Views        int64
	ThumbnailURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Search records one search request and its refinement.
type Search struct {
	ID              string
	UserID          string
	Query           string
	RefinedQuery    string
	CandidatesCount int
	CreatedAt       time.Time
}

// Selection records one curated pick out of a search.
type Selection struct {
	ID       string
	UserID   string
	SearchID string
	VideoID  string
	Reason   string
}

// Datesheet source types.
const (
	DatesheetSourceUpload = "upload"
	DatesheetSourceManual = "manual"
)

// DatesheetItem is one exam entry. ExamDate is an ISO YYYY-MM-DD string.
type DatesheetItem struct {
	Subject  string   `json:"subject"`
	ExamDate string   `json:"examDate"`
	Syllabus []string `json:"syllabus,omitempty"`
}

// Datesheet groups a user's exam entries parsed from uploads or entered
// manually.
type Datesheet struct {
	ID         string
	UserID     string
	Title      string
	SourceType string
	FileURL    string
	Items      []DatesheetItem
	Notes      string
	CreatedAt  time.Time
}

// NormalizeDatesheetItems trims strings and drops empty syllabus bullets.
func NormalizeDatesheetItems(items []DatesheetItem) []DatesheetItem {
	normalized := make([]DatesheetItem, 0, len(items))
	for _, it := range items {
		syllabus := make([]string, 0, len(it.Syllabus))
		for _, s := range it.Syllabus {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				syllabus = append(syllabus, trimmed)
			}
		}
		normalized = append(normalized, DatesheetItem{
			Subject:  strings.TrimSpace(it.Subject),
			ExamDate: strings.TrimSpace(it.ExamDate),
			Syllabus: syllabus,
		})
	}
	return normalized
}
