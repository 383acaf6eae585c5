package dto

// DatesheetItem is one exam entry on the wire.
type DatesheetItem struct {
	Subject  string   `json:"subject"`
	ExamDate string   `json:"examDate"`
	Syllabus []string `json:"syllabus,omitempty"`
}

// ParseDatesheetRequest is the body of POST /api/datesheets/parse. The
// singular fields are accepted for older clients and folded into the lists.
type ParseDatesheetRequest struct {
	FileURL   string   `json:"fileUrl,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	FileURLs  []string `json:"fileUrls,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// ParsedDatesheet is the normalized parse output.
type ParsedDatesheet struct {
	Title string          `json:"title"`
	Items []DatesheetItem `json:"items"`
}

// ParseDatesheetResponse is the body of a successful parse.
type ParseDatesheetResponse struct {
	Parsed ParsedDatesheet `json:"parsed"`
}

// CreateDatesheetRequest is the body of POST /api/datesheets.
type CreateDatesheetRequest struct {
	Title      string          `json:"title"`
	SourceType string          `json:"sourceType"`
	FileURL    string          `json:"fileUrl,omitempty"`
	Items      []DatesheetItem `json:"items"`
	Notes      string          `json:"notes,omitempty"`
}

// CreateDatesheetResponse is the body of a successful create.
type CreateDatesheetResponse struct {
	ID string `json:"id"`
}

// DatesheetSummary is one entry in the datesheet list.
type DatesheetSummary struct {
	ID            string `json:"id"`
	CreatedAtMs   int64  `json:"createdAtMs"`
	Title         string `json:"title"`
	SourceType    string `json:"sourceType"`
	FileURL       string `json:"fileUrl,omitempty"`
	ItemsCount    int    `json:"itemsCount"`
	FirstExamDate string `json:"firstExamDate,omitempty"`
	LastExamDate  string `json:"lastExamDate,omitempty"`
}

// ListDatesheetsResponse is the body of GET /api/datesheets.
type ListDatesheetsResponse struct {
	Datesheets []DatesheetSummary `json:"datesheets"`
}
