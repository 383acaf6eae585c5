package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
)

// DatesheetService parses, stores, and lists exam datesheets.
type DatesheetService interface {
	Parse(ctx context.Context, req *dto.ParseDatesheetRequest, allowedSubjects []string) (*dto.ParseDatesheetResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateDatesheetRequest) (*dto.CreateDatesheetResponse, error)
	List(ctx context.Context, userID string) (*dto.ListDatesheetsResponse, error)
}

type datesheetServiceImpl struct {
	parser domain.DatesheetParser
	repo   domain.DatesheetRepository
}

func NewDatesheetService(parser domain.DatesheetParser, repo domain.DatesheetRepository) DatesheetService {
	return &datesheetServiceImpl{parser: parser, repo: repo}
}

// Parse runs the multimodal extraction over the provided file/image URLs.
func (s *datesheetServiceImpl) Parse(ctx context.Context, req *dto.ParseDatesheetRequest, allowedSubjects []string) (*dto.ParseDatesheetResponse, error) {
	urls := collectAttachmentURLs(req)
	if len(urls) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("fileUrl(s) or imageUrl(s)")}
	}

	parsed, err := s.parser.ParseDatesheet(ctx, urls, allowedSubjects)
	if err != nil {
		return nil, err
	}

	items := domain.NormalizeDatesheetItems(parsed.Items)
	return &dto.ParseDatesheetResponse{
		Parsed: dto.ParsedDatesheet{
			Title: strings.TrimSpace(parsed.Title),
			Items: toDTODatesheetItems(items),
		},
	}, nil
}

func (s *datesheetServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateDatesheetRequest) (*dto.CreateDatesheetResponse, error) {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, domain.NewMissingFieldError("title"))
	}
	if req.SourceType != domain.DatesheetSourceUpload && req.SourceType != domain.DatesheetSourceManual {
		errs = append(errs, domain.NewInvalidFormatError("sourceType", req.SourceType))
	}
	if len(req.Items) == 0 {
		errs = append(errs, domain.NewMissingFieldError("items"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	datesheet := &domain.Datesheet{
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		SourceType: req.SourceType,
		FileURL:    req.FileURL,
		Items:      domain.NormalizeDatesheetItems(toDomainDatesheetItems(req.Items)),
		Notes:      strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, datesheet); err != nil {
		return nil, domain.NewInternalError("failed to save datesheet", err)
	}
	return &dto.CreateDatesheetResponse{ID: datesheet.ID}, nil
}

// List returns summaries newest-first with first/last exam dates derived
// from the items.
func (s *datesheetServiceImpl) List(ctx context.Context, userID string) (*dto.ListDatesheetsResponse, error) {
	datesheets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list datesheets", err)
	}

	summaries := make([]dto.DatesheetSummary, 0, len(datesheets))
	for _, d := range datesheets {
		summary := dto.DatesheetSummary{
			ID:          d.ID,
			CreatedAtMs: d.CreatedAt.UnixMilli(),
			Title:       d.Title,
			SourceType:  d.SourceType,
			FileURL:     d.FileURL,
			ItemsCount:  len(d.Items),
		}
		dates := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			if it.ExamDate != "" {
				dates = append(dates, it.ExamDate)
			}
		}
		// ISO dates sort lexicographically
		sort.Strings(dates)
		if len(dates) > 0 {
			summary.FirstExamDate = dates[0]
			summary.LastExamDate = dates[len(dates)-1]
		}
		summaries = append(summaries, summary)
	}

	return &dto.ListDatesheetsResponse{Datesheets: summaries}, nil
}

func collectAttachmentURLs(req *dto.ParseDatesheetRequest) []string {
	urls := make([]string, 0, len(req.FileURLs)+len(req.ImageURLs)+2)
	urls = append(urls, req.FileURLs...)
	urls = append(urls, req.ImageURLs...)
	if req.FileURL != "" {
		urls = append(urls, req.FileURL)
	}
	if req.ImageURL != "" {
		urls = append(urls, req.ImageURL)
	}
	return urls
}

func toDomainDatesheetItems(items []dto.DatesheetItem) []domain.DatesheetItem {
	out := make([]domain.DatesheetItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.DatesheetItem{
			Subject:  it.Subject,
			ExamDate: it.ExamDate,
			Syllabus: it.Syllabus,
		})
	}
	return out
}

func toDTODatesheetItems(items []domain.DatesheetItem) []dto.DatesheetItem {
	out := make([]dto.DatesheetItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.DatesheetItem{
			Subject:  it.Subject,
			ExamDate: it.ExamDate,
			Syllabus: it.Syllabus,
		})
	}
	return out
}
