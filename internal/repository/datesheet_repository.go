package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/repository/models"
	"github.com/rexdotsh/praxis/internal/util"

	"github.com/jmoiron/sqlx"
)

// DatesheetDatabaseAdapter implements domain.DatesheetRepository using sqlx.
type DatesheetDatabaseAdapter struct {
	db *sqlx.DB
}

func NewDatesheetDatabaseAdapter(db *sqlx.DB) domain.DatesheetRepository {
	return &DatesheetDatabaseAdapter{db: db}
}

func (a *DatesheetDatabaseAdapter) Create(ctx context.Context, datesheet *domain.Datesheet) error {
	executor := GetExecutor(ctx, a.db)

	if datesheet.ID == "" {
		datesheet.ID = util.NewULID()
	}
	datesheet.CreatedAt = time.Now()

	modelDatesheet, err := toModelDatesheet(datesheet)
	if err != nil {
		return err
	}
	query := `INSERT INTO datesheets (id, user_id, title, source_type, file_url, items_json, notes, created_at)
	          VALUES (:id, :user_id, :title, :source_type, :file_url, :items_json, :notes, :created_at)`
	if _, err := executor.NamedExecContext(ctx, query, modelDatesheet); err != nil {
		return fmt.Errorf("failed to insert datesheet: %w", err)
	}
	return nil
}

func (a *DatesheetDatabaseAdapter) ListByUser(ctx context.Context, userID string) ([]domain.Datesheet, error) {
	executor := GetExecutor(ctx, a.db)

	var modelDatesheets []models.Datesheet
	query := `SELECT * FROM datesheets WHERE user_id = ? ORDER BY created_at DESC`
	if err := executor.SelectContext(ctx, &modelDatesheets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list datesheets for user %s: %w", userID, err)
	}

	datesheets := make([]domain.Datesheet, 0, len(modelDatesheets))
	for i := range modelDatesheets {
		d, err := toDomainDatesheet(&modelDatesheets[i])
		if err != nil {
			return nil, err
		}
		datesheets = append(datesheets, *d)
	}
	return datesheets, nil
}

func toModelDatesheet(d *domain.Datesheet) (*models.Datesheet, error) {
	itemsJSON, err := json.Marshal(d.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal datesheet items: %w", err)
	}
	return &models.Datesheet{
		ID:         d.ID,
		UserID:     d.UserID,
		Title:      d.Title,
		SourceType: d.SourceType,
		FileURL:    util.StringToNullString(d.FileURL),
		ItemsJSON:  string(itemsJSON),
		Notes:      util.StringToNullString(d.Notes),
		CreatedAt:  d.CreatedAt,
	}, nil
}

func toDomainDatesheet(m *models.Datesheet) (*domain.Datesheet, error) {
	var items []domain.DatesheetItem
	if err := json.Unmarshal([]byte(m.ItemsJSON), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items for datesheet %s: %w", m.ID, err)
	}
	return &domain.Datesheet{
		ID:         m.ID,
		UserID:     m.UserID,
		Title:      m.Title,
		SourceType: m.SourceType,
		FileURL:    m.FileURL.String,
		Items:      items,
		Notes:      m.Notes.String,
		CreatedAt:  m.CreatedAt,
	}, nil
}
