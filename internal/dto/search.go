package dto

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchPick is one curated result in a search response.
type SearchPick struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	URL               string `json:"url"`
	Channel           string `json:"channel"`
	DurationFormatted string `json:"durationFormatted,omitempty"`
	Views             int64  `json:"views,omitempty"`
	ThumbnailURL      string `json:"thumbnailUrl,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	RefinedQuery    string       `json:"refinedQuery"`
	CandidatesCount int          `json:"candidatesCount"`
	Picks           []SearchPick `json:"picks"`
}
