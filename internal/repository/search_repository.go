package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/repository/models"
	"github.com/rexdotsh/praxis/internal/util"

	"github.com/jmoiron/sqlx"
)

// SearchDatabaseAdapter implements domain.SearchRepository using sqlx.
type SearchDatabaseAdapter struct {
	db *sqlx.DB
}

func NewSearchDatabaseAdapter(db *sqlx.DB) domain.SearchRepository {
	return &SearchDatabaseAdapter{db: db}
}

func (a *SearchDatabaseAdapter) CreateSearch(ctx context.Context, search *domain.Search) error {
	executor := GetExecutor(ctx, a.db)

	if search.ID == "" {
		search.ID = util.NewULID()
	}
	search.CreatedAt = time.Now()

	modelSearch := &models.Search{
		ID:              search.ID,
		UserID:          search.UserID,
		Query:           search.Query,
		RefinedQuery:    search.RefinedQuery,
		CandidatesCount: search.CandidatesCount,
		CreatedAt:       search.CreatedAt,
	}
	query := `INSERT INTO searches (id, user_id, query, refined_query, candidates_count, created_at)
	          VALUES (:id, :user_id, :query, :refined_query, :candidates_count, :created_at)`
	if _, err := executor.NamedExecContext(ctx, query, modelSearch); err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}
	return nil
}

func (a *SearchDatabaseAdapter) CreateSelection(ctx context.Context, selection *domain.Selection) error {
	executor := GetExecutor(ctx, a.db)

	if selection.ID == "" {
		selection.ID = util.NewULID()
	}

	modelSelection := &models.Selection{
		ID:       selection.ID,
		UserID:   selection.UserID,
		SearchID: selection.SearchID,
		VideoID:  selection.VideoID,
		Reason:   util.StringToNullString(selection.Reason),
	}
	query := `INSERT INTO selections (id, user_id, search_id, video_id, reason)
	          VALUES (:id, :user_id, :search_id, :video_id, :reason)`
	if _, err := executor.NamedExecContext(ctx, query, modelSelection); err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}
	return nil
}
