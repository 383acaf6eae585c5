package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/repository/models"
	"github.com/rexdotsh/praxis/internal/util"

	"github.com/jmoiron/sqlx"
)

// VideoDatabaseAdapter implements domain.VideoRepository using sqlx.
type VideoDatabaseAdapter struct {
	db *sqlx.DB
}

func NewVideoDatabaseAdapter(db *sqlx.DB) domain.VideoRepository {
	return &VideoDatabaseAdapter{db: db}
}

// UpsertByYoutubeID inserts or refreshes a video keyed by its YouTube ID and
// returns the stored row. Zero-valued metadata never overwrites known
// values.
func (a *VideoDatabaseAdapter) UpsertByYoutubeID(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	executor := GetExecutor(ctx, a.db)

	now := time.Now()
	modelVideo := &models.Video{
		ID:           util.NewULID(),
		YoutubeID:    video.YoutubeID,
		Title:        video.Title,
		URL:          video.URL,
		Channel:      video.Channel,
		DurationMs:   util.Int64ToNullInt64(video.DurationMs),
		Views:        util.Int64ToNullInt64(video.Views),
		ThumbnailURL: util.StringToNullString(video.ThumbnailURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `INSERT INTO videos (id, youtube_id, title, url, channel, duration_ms, views, thumbnail_url, created_at, updated_at)
	          VALUES (:id, :youtube_id, :title, :url, :channel, :duration_ms, :views, :thumbnail_url, :created_at, :updated_at)
	          ON CONFLICT(youtube_id) DO UPDATE SET
	            title = excluded.title,
	            url = excluded.url,
	            channel = excluded.channel,
	            duration_ms = COALESCE(excluded.duration_ms, videos.duration_ms),
	            views = COALESCE(excluded.views, videos.views),
	            thumbnail_url = COALESCE(excluded.thumbnail_url, videos.thumbnail_url),
	            updated_at = excluded.updated_at`
	if _, err := executor.NamedExecContext(ctx, query, modelVideo); err != nil {
		return nil, fmt.Errorf("failed to upsert video %s: %w", video.YoutubeID, err)
	}

	return a.GetByYoutubeID(ctx, video.YoutubeID)
}

func (a *VideoDatabaseAdapter) GetByYoutubeID(ctx context.Context, youtubeID string) (*domain.Video, error) {
	executor := GetExecutor(ctx, a.db)

	var modelVideo models.Video
	query := `SELECT * FROM videos WHERE youtube_id = ?`
	if err := executor.GetContext(ctx, &modelVideo, query, youtubeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video %s: %w", youtubeID, err)
	}
	return toDomainVideo(&modelVideo), nil
}

func toDomainVideo(m *models.Video) *domain.Video {
	return &domain.Video{
		ID:           m.ID,
		YoutubeID:    m.YoutubeID,
		Title:        m.Title,
		URL:          m.URL,
		Channel:      m.Channel,
		DurationMs:   m.DurationMs.Int64,
		Views:        m.Views.Int64,
		ThumbnailURL: m.ThumbnailURL.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
