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

// UserDatabaseAdapter implements domain.UserRepository using sqlx.
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

// GetOrCreateBySubject resolves a provider subject to a user row, creating
// one on first sight. A concurrent first-insert loses the conflict and
// falls through to the re-select.
func (a *UserDatabaseAdapter) GetOrCreateBySubject(ctx context.Context, subject string) (*domain.User, error) {
	executor := GetExecutor(ctx, a.db)

	user, err := a.getBySubject(ctx, executor, subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := time.Now()
	modelUser := &models.User{
		ID:        util.NewULID(),
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO users (id, subject, created_at, updated_at)
	          VALUES (:id, :subject, :created_at, :updated_at)
	          ON CONFLICT(subject) DO NOTHING`
	if _, err := executor.NamedExecContext(ctx, query, modelUser); err != nil {
		return nil, fmt.Errorf("failed to create user for subject: %w", err)
	}

	user, err = a.getBySubject(ctx, executor, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user missing after insert for subject")
	}
	return user, nil
}

func (a *UserDatabaseAdapter) getBySubject(ctx context.Context, executor DBTX, subject string) (*domain.User, error) {
	var modelUser models.User
	query := `SELECT * FROM users WHERE subject = ?`
	if err := executor.GetContext(ctx, &modelUser, query, subject); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}
	return toDomainUser(&modelUser), nil
}

func toDomainUser(m *models.User) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Subject:   m.Subject,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
