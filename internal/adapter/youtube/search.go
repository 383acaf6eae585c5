package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// searchParamsVideosOnly is YouTube's "type: video" filter token.
const searchParamsVideosOnly = "EgIQAQ=="

var reUploadedAgo = regexp.MustCompile(`(?i)(\d+)\s+(year|month|week|day)s?\s+ago`)

// SearchClient finds candidate videos by scraping the YouTube results page
// and reading the embedded ytInitialData blob. It implements
// domain.VideoSearcher.
type SearchClient struct {
	httpClient *http.Client
	userAgent  string
}

// NewSearchClient creates a SearchClient. An empty userAgent falls back to
// DefaultUserAgent.
func NewSearchClient(httpClient *http.Client, userAgent string) *SearchClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &SearchClient{httpClient: httpClient, userAgent: userAgent}
}

// The results page embeds a large JSON document under "var ytInitialData".
// Only the paths down to videoRenderer entries are modeled.
type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"title"`
	OwnerText struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"ownerText"`
	LengthText struct {
		SimpleText string `json:"simpleText"`
	} `json:"lengthText"`
	ViewCountText struct {
		SimpleText string `json:"simpleText"`
	} `json:"viewCountText"`
	PublishedTimeText struct {
		SimpleText string `json:"simpleText"`
	} `json:"publishedTimeText"`
	Thumbnail struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
}

// Search runs a videos-only query and returns up to limit candidates.
// Entries without a length are skipped, which drops live streams and shorts.
func (c *SearchClient) Search(ctx context.Context, query string, limit int) ([]domain.SearchCandidate, error) {
	q := url.Values{}
	q.Set("search_query", query)
	q.Set("sp", searchParamsVideosOnly)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.youtube.com/results?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewInternalError("youtube search request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewInternalError(fmt.Sprintf("youtube search returned status %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewInternalError("failed to read youtube search response", err)
	}

	raw, ok := extractInitialData(string(body))
	if !ok {
		return nil, domain.NewInternalError("ytInitialData not found in results page", nil)
	}

	var data initialData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, domain.NewInternalError("failed to decode ytInitialData", err)
	}

	candidates := collectCandidates(&data, limit)
	logger.Get().Debug("YouTube search completed",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))
	return candidates, nil
}

func collectCandidates(data *initialData, limit int) []domain.SearchCandidate {
	var out []domain.SearchCandidate
	for _, section := range data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		for _, item := range section.ItemSectionRenderer.Contents {
			vr := item.VideoRenderer
			if vr == nil || vr.VideoID == "" {
				continue
			}
			if vr.LengthText.SimpleText == "" {
				continue
			}
			c := domain.SearchCandidate{
				ID:                vr.VideoID,
				URL:               "https://www.youtube.com/watch?v=" + vr.VideoID,
				DurationFormatted: vr.LengthText.SimpleText,
				Views:             parseViewCount(vr.ViewCountText.SimpleText),
				UploadedAt:        vr.PublishedTimeText.SimpleText,
			}
			if len(vr.Title.Runs) > 0 {
				c.Title = vr.Title.Runs[0].Text
			}
			if len(vr.OwnerText.Runs) > 0 {
				c.Channel = vr.OwnerText.Runs[0].Text
			}
			if n := len(vr.Thumbnail.Thumbnails); n > 0 {
				c.ThumbnailURL = vr.Thumbnail.Thumbnails[n-1].URL
			}
			out = append(out, c)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// extractInitialData pulls the JSON object assigned to ytInitialData out of
// the results page HTML.
func extractInitialData(page string) (string, bool) {
	const marker = "var ytInitialData = "
	start := strings.Index(page, marker)
	if start < 0 {
		return "", false
	}
	start += len(marker)
	end := strings.Index(page[start:], ";</script>")
	if end < 0 {
		return "", false
	}
	return page[start : start+end], true
}

// parseViewCount reads strings like "1,234,567 views". Unparseable input
// ("No views", live viewer counts) yields 0.
func parseViewCount(s string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseUploadedAtToMs converts relative upload strings like "2 years ago"
// into an absolute epoch-ms estimate against now. It returns 0 when the
// string does not carry a recognizable age.
func ParseUploadedAtToMs(uploadedAt string, now time.Time) int64 {
	m := reUploadedAgo.FindStringSubmatch(uploadedAt)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	var unit time.Duration
	switch strings.ToLower(m[2]) {
	case "year":
		unit = 365 * 24 * time.Hour
	case "month":
		unit = 30 * 24 * time.Hour
	case "week":
		unit = 7 * 24 * time.Hour
	case "day":
		unit = 24 * time.Hour
	}
	return now.Add(-time.Duration(n) * unit).UnixMilli()
}
