package youtube

import (
	"regexp"

	"github.com/rexdotsh/praxis/internal/domain"
)

var (
	reVideoID  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	reVideoURL = regexp.MustCompile(`(?i)(?:v=|/|v/|embed/|watch\?.*v=|youtu\.be/|/v/|e/|watch\?.*vi?=|/embed/|vi?/|/vi?/|/e/)([a-zA-Z0-9_-]{11})`)
)

// ExtractVideoID accepts a bare 11-character video ID or any of the common
// YouTube URL shapes (watch, youtu.be, embed, shorts) and returns the ID.
func ExtractVideoID(input string) (string, error) {
	if len(input) == 11 && reVideoID.MatchString(input) {
		return input, nil
	}
	if m := reVideoURL.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	return "", domain.NewInvalidInputError("invalid YouTube video ID or URL")
}
