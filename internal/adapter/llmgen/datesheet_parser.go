package llmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// datesheetParser implements domain.DatesheetParser over the shared client.
// PDFs are downloaded and attached as binary parts; images are passed by
// URL.
type datesheetParser struct {
	client     *Client
	httpClient *http.Client
}

func NewDatesheetParser(client *Client) domain.DatesheetParser {
	return &datesheetParser{
		client:     client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *datesheetParser) ParseDatesheet(ctx context.Context, urls []string, allowedSubjects []string) (*domain.ParsedDatesheet, error) {
	if len(urls) == 0 {
		return nil, domain.NewInvalidInputError("no file or image URLs provided")
	}

	allowed := dedupeSubjects(allowedSubjects)

	system := "You are an expert at reading exam schedules (datesheets) and syllabi from PDFs and images. " +
		"Extract normalized data. When an allowed subjects list is provided, map any detected subject to the " +
		"closest allowed subject and emit only that canonical value."

	prompt := buildDatesheetPrompt(allowed)

	parts := []llms.ContentPart{llms.TextPart(prompt)}
	for _, u := range urls {
		part, err := p.attachmentPart(ctx, u)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	}

	raw, err := p.client.generateMessages(ctx, p.client.models.Datesheets, messages, 0.2)
	if err != nil {
		return nil, err
	}

	extracted, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed domain.ParsedDatesheet
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal datesheet: %w", err))
	}
	if len(parsed.Items) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("no exam entries extracted"))
	}

	if len(allowed) > 0 {
		parsed.Items = filterToAllowed(parsed.Items, allowed)
		if len(parsed.Items) == 0 {
			return nil, domain.NewLLMServiceError(fmt.Errorf("no exam entries matched the allowed subjects"))
		}
	}

	logger.Get().Info("Parsed datesheet",
		zap.Int("files", len(urls)),
		zap.Int("items", len(parsed.Items)))
	return &parsed, nil
}

func buildDatesheetPrompt(allowedSubjects []string) string {
	lines := []string{
		"Return ONLY valid JSON (no markdown/code fences).",
		`Output shape: { "title": string, "items": [{ "subject": string, "examDate": "YYYY-MM-DD", "syllabus": string[] }] }.`,
		"If multiple subjects share a date, create one item per subject.",
		"Syllabus is optional and often empty.",
		"Multiple files may be provided (e.g., a datesheet and a syllabus). Combine information across files, merge syllabus bullets for the same subject, and deduplicate subjects/dates. Prefer exam dates from datesheet/timetable documents when conflicts arise.",
		"Normalize dates to ISO YYYY-MM-DD. If year missing, infer.",
		"Ignore headers/footers/watermarks.",
	}
	if len(allowedSubjects) > 0 {
		encoded, _ := json.Marshal(allowedSubjects)
		lines = append(lines,
			fmt.Sprintf("Subjects allowed: %s. For each detected subject, choose the CLOSEST match from this list using case-insensitive, punctuation-insensitive fuzzy matching (including abbreviations, acronyms, plurals, spacing, truncated names). OUTPUT the exact canonical value from the list. If nothing is reasonably close, SKIP that item.", encoded),
			"The datesheet may include subjects outside the allowed list; ignore them.",
		)
	}
	lines = append(lines,
		"If the same exam date is linked to multiple subjects (e.g., OPT-A and OPT-B), include only one by default (prioritize OPT-A). Ensure no duplicate exam dates are created.",
		"Format the syllabus concisely and consistently: do not repeat book names or other common prefixes for each chapter/topic. Preserve chapter numbers if present (e.g., Ch-1, Ch-2), and keep all subjects following the same style.",
	)
	return strings.Join(lines, " ")
}

// attachmentPart turns a blob URL into an LLM content part. The model
// gateway cannot fetch PDFs by URL, so those are downloaded and inlined.
func (p *datesheetParser) attachmentPart(ctx context.Context, rawURL string) (llms.ContentPart, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid attachment URL")
	}
	if !strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		return llms.ImageURLPart(rawURL), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewInternalError("failed to download datesheet PDF", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewInternalError(fmt.Sprintf("datesheet PDF download returned status %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewInternalError("failed to read datesheet PDF", err)
	}
	return llms.BinaryPart("application/pdf", data), nil
}

func dedupeSubjects(subjects []string) []string {
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// filterToAllowed drops items whose subject is not in the canonical list.
// The prompt asks the model to emit canonical values only, so this is the
// backstop for models that do not comply.
func filterToAllowed(items []domain.DatesheetItem, allowed []string) []domain.DatesheetItem {
	canonical := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		canonical[s] = struct{}{}
	}
	out := make([]domain.DatesheetItem, 0, len(items))
	for _, item := range items {
		if _, ok := canonical[item.Subject]; ok {
			out = append(out, item)
		}
	}
	return out
}
