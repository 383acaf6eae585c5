package youtube

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare id", input: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url with params", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{name: "short url", input: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed url", input: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "garbage", input: "not a video", wantErr: true},
		{name: "too short id", input: "abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimedText(t *testing.T) {
	xml := `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
		`<text start="0" dur="2.5">hello world</text>` +
		`<text start="2.5" dur="3.119">it&#39;s a test</text>` +
		`<text start="5.619" dur="1">bye</text>` +
		`</transcript>`

	items := ParseTimedText(xml, "en")
	require.Len(t, items, 3)

	assert.Equal(t, "hello world", items[0].Text)
	assert.Equal(t, int64(0), items[0].StartMs)
	assert.Equal(t, int64(2500), items[0].DurationMs)
	assert.Equal(t, "en", items[0].Lang)

	// fractional seconds round to the nearest millisecond
	assert.Equal(t, int64(2500), items[1].StartMs)
	assert.Equal(t, int64(3119), items[1].DurationMs)
	assert.Equal(t, "it's a test", items[1].Text)

	assert.Equal(t, int64(5619), items[2].StartMs)
}

func TestParseTimedText_Empty(t *testing.T) {
	assert.Empty(t, ParseTimedText("<transcript></transcript>", "en"))
	assert.Empty(t, ParseTimedText("not xml at all", ""))
}

func TestExtractInnertubeKey(t *testing.T) {
	plain := `...junk..."INNERTUBE_API_KEY":"AIzaSyTestKey123"...more junk...`
	key, ok := extractInnertubeKey(plain)
	assert.True(t, ok)
	assert.Equal(t, "AIzaSyTestKey123", key)

	escaped := `...INNERTUBE_API_KEY\":\"AIzaSyEscaped456\"...`
	key, ok = extractInnertubeKey(escaped)
	assert.True(t, ok)
	assert.Equal(t, "AIzaSyEscaped456", key)

	_, ok = extractInnertubeKey("<html>nothing here</html>")
	assert.False(t, ok)
}

func TestSelectTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "https://a", LanguageCode: "en"},
		{BaseURL: "https://b", LanguageCode: "ko"},
	}

	assert.Equal(t, "https://b", selectTrack(tracks, "ko").BaseURL)
	// unknown language falls back to the first track
	assert.Equal(t, "https://a", selectTrack(tracks, "fr").BaseURL)
	assert.Equal(t, "https://a", selectTrack(tracks, "").BaseURL)
}

func TestExtractInitialData(t *testing.T) {
	page := `<html><script>var ytInitialData = {"contents":{"a":1}};</script></html>`
	raw, ok := extractInitialData(page)
	assert.True(t, ok)
	assert.Equal(t, `{"contents":{"a":1}}`, raw)

	_, ok = extractInitialData("<html>no data</html>")
	assert.False(t, ok)
}

func TestParseViewCount(t *testing.T) {
	assert.Equal(t, int64(1234567), parseViewCount("1,234,567 views"))
	assert.Equal(t, int64(42), parseViewCount("42 views"))
	assert.Equal(t, int64(0), parseViewCount("No views"))
	assert.Equal(t, int64(0), parseViewCount(""))
}

func TestParseUploadedAtToMs(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	twoYears := ParseUploadedAtToMs("2 years ago", now)
	assert.Equal(t, now.Add(-2*365*24*time.Hour).UnixMilli(), twoYears)

	oneMonth := ParseUploadedAtToMs("1 month ago", now)
	assert.Equal(t, now.Add(-30*24*time.Hour).UnixMilli(), oneMonth)

	threeWeeks := ParseUploadedAtToMs("3 weeks ago", now)
	assert.Equal(t, now.Add(-3*7*24*time.Hour).UnixMilli(), threeWeeks)

	assert.Equal(t, int64(0), ParseUploadedAtToMs("Streamed live", now))
	assert.Equal(t, int64(0), ParseUploadedAtToMs("", now))
}

func TestCollectCandidates(t *testing.T) {
	raw := `{
	  "contents": {
	    "twoColumnSearchResultsRenderer": {
	      "primaryContents": {
	        "sectionListRenderer": {
	          "contents": [
	            {
	              "itemSectionRenderer": {
	                "contents": [
	                  {
	                    "videoRenderer": {
	                      "videoId": "aaaaaaaaaaa",
	                      "title": {"runs": [{"text": "Intro to Algebra"}]},
	                      "ownerText": {"runs": [{"text": "MathChannel"}]},
	                      "lengthText": {"simpleText": "12:34"},
	                      "viewCountText": {"simpleText": "1,234 views"},
	                      "publishedTimeText": {"simpleText": "2 years ago"},
	                      "thumbnail": {"thumbnails": [{"url": "https://small"}, {"url": "https://big"}]}
	                    }
	                  },
	                  {"videoRenderer": {"videoId": "lllllllllll", "viewCountText": {"simpleText": "7 watching"}}},
	                  {"shelfRenderer": {}},
	                  {
	                    "videoRenderer": {
	                      "videoId": "bbbbbbbbbbb",
	                      "title": {"runs": [{"text": "Algebra Part 2"}]},
	                      "lengthText": {"simpleText": "8:00"}
	                    }
	                  }
	                ]
	              }
	            }
	          ]
	        }
	      }
	    }
	  }
	}`

	var data initialData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	got := collectCandidates(&data, 0)
	require.Len(t, got, 2) // the live stream and the shelf are skipped

	assert.Equal(t, "aaaaaaaaaaa", got[0].ID)
	assert.Equal(t, "Intro to Algebra", got[0].Title)
	assert.Equal(t, "MathChannel", got[0].Channel)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", got[0].URL)
	assert.Equal(t, "12:34", got[0].DurationFormatted)
	assert.Equal(t, int64(1234), got[0].Views)
	assert.Equal(t, "2 years ago", got[0].UploadedAt)
	assert.Equal(t, "https://big", got[0].ThumbnailURL)

	assert.Equal(t, "bbbbbbbbbbb", got[1].ID)

	limited := collectCandidates(&data, 1)
	assert.Len(t, limited, 1)
}
