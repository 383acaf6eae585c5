package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// Innertube player calls identify as the Android client because that
	// variant still serves caption tracks without a signed player token.
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

var (
	reInnertubeKey        = regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`)
	reInnertubeKeyEscaped = regexp.MustCompile(`INNERTUBE_API_KEY\\":\\"([^\\"]+)\\"`)
	reXMLTranscript       = regexp.MustCompile(`<text start="([^"]*)" dur="([^"]*)">([^<]*)</text>`)
	reFmtSuffix           = regexp.MustCompile(`&fmt=[^&]+$`)
)

// TranscriptClient fetches caption tracks by scraping the watch page for an
// innertube API key and replaying the player request YouTube's own clients
// make. It implements domain.TranscriptFetcher.
type TranscriptClient struct {
	httpClient *http.Client
	userAgent  string
}

// NewTranscriptClient creates a TranscriptClient. An empty userAgent falls
// back to DefaultUserAgent.
func NewTranscriptClient(httpClient *http.Client, userAgent string) *TranscriptClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &TranscriptClient{httpClient: httpClient, userAgent: userAgent}
}

type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer captionTracklist `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayerCaptionsTracklistRenderer captionTracklist `json:"playerCaptionsTracklistRenderer"`
}

type captionTracklist struct {
	CaptionTracks []captionTrack `json:"captionTracks"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	URL          string `json:"url"`
	LanguageCode string `json:"languageCode"`
}

// FetchTranscript retrieves the full caption track for a video. When lang is
// non-empty the matching track is preferred, otherwise the first track is
// used.
func (c *TranscriptClient) FetchTranscript(ctx context.Context, videoIDOrURL string, lang string) ([]domain.TranscriptItem, error) {
	videoID, err := ExtractVideoID(videoIDOrURL)
	if err != nil {
		return nil, err
	}

	watchHTML, err := c.fetchWatchPage(ctx, videoID, lang)
	if err != nil {
		return nil, domain.NewTranscriptUnavailableError(videoID, err)
	}

	apiKey, ok := extractInnertubeKey(watchHTML)
	if !ok {
		return nil, domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("innertube api key not found in watch page"))
	}

	tracks, err := c.fetchCaptionTracks(ctx, videoID, apiKey)
	if err != nil {
		return nil, domain.NewTranscriptUnavailableError(videoID, err)
	}
	if len(tracks) == 0 {
		return nil, domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("captions disabled"))
	}

	selected := selectTrack(tracks, lang)
	trackURL := selected.BaseURL
	if trackURL == "" {
		trackURL = selected.URL
	}
	if trackURL == "" {
		return nil, domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("caption track has no url"))
	}
	trackURL = reFmtSuffix.ReplaceAllString(trackURL, "")

	xml, err := c.fetchBody(ctx, trackURL, lang)
	if err != nil {
		return nil, domain.NewTranscriptUnavailableError(videoID, err)
	}

	resolvedLang := lang
	if resolvedLang == "" {
		resolvedLang = selected.LanguageCode
	}
	items := ParseTimedText(xml, resolvedLang)
	if len(items) == 0 {
		return nil, domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("empty caption track"))
	}

	logger.Get().Debug("Fetched transcript",
		zap.String("videoId", videoID),
		zap.String("lang", resolvedLang),
		zap.Int("items", len(items)))
	return items, nil
}

func (c *TranscriptClient) fetchWatchPage(ctx context.Context, videoID, lang string) (string, error) {
	return c.fetchBody(ctx, "https://www.youtube.com/watch?v="+videoID, lang)
}

func (c *TranscriptClient) fetchBody(ctx context.Context, url, lang string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *TranscriptClient) fetchCaptionTracks(ctx context.Context, videoID, apiKey string) ([]captionTrack, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
			},
		},
		"videoId": videoID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := "https://www.youtube.com/youtubei/v1/player?key=" + apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player request failed with status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, err
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		tracks = player.PlayerCaptionsTracklistRenderer.CaptionTracks
	}
	return tracks, nil
}

func extractInnertubeKey(watchHTML string) (string, bool) {
	if m := reInnertubeKey.FindStringSubmatch(watchHTML); m != nil {
		return m[1], true
	}
	if m := reInnertubeKeyEscaped.FindStringSubmatch(watchHTML); m != nil {
		return m[1], true
	}
	return "", false
}

func selectTrack(tracks []captionTrack, lang string) captionTrack {
	if lang != "" {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	return tracks[0]
}

// ParseTimedText converts a timedtext XML document into transcript items.
// Timestamps are seconds in the source and are rounded to milliseconds.
func ParseTimedText(xml string, lang string) []domain.TranscriptItem {
	matches := reXMLTranscript.FindAllStringSubmatch(xml, -1)
	items := make([]domain.TranscriptItem, 0, len(matches))
	for _, m := range matches {
		start, _ := strconv.ParseFloat(m[1], 64)
		dur, _ := strconv.ParseFloat(m[2], 64)
		items = append(items, domain.TranscriptItem{
			Text:       html.UnescapeString(m[3]),
			StartMs:    int64(math.Round(start * 1000)),
			DurationMs: int64(math.Round(dur * 1000)),
			Lang:       lang,
		})
	}
	return items
}
