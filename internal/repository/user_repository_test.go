package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestGetOrCreateBySubject(t *testing.T) {
	ctx := context.Background()
	userColumns := []string{"id", "subject", "created_at", "updated_at"}
	selectQuery := regexp.QuoteMeta(`SELECT * FROM users WHERE subject = ?`)

	t.Run("Existing", func(t *testing.T) {
		db, mock := setupUserTestDB(t)
		defer db.Close()
		adapter := NewUserDatabaseAdapter(db)

		now := time.Now()
		mock.ExpectQuery(selectQuery).
			WithArgs("clerk|abc").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("user1", "clerk|abc", now, now))

		user, err := adapter.GetOrCreateBySubject(ctx, "clerk|abc")
		require.NoError(t, err)
		assert.Equal(t, "user1", user.ID)
		assert.Equal(t, "clerk|abc", user.Subject)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		db, mock := setupUserTestDB(t)
		defer db.Close()
		adapter := NewUserDatabaseAdapter(db)

		now := time.Now()
		mock.ExpectQuery(selectQuery).
			WithArgs("clerk|new").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(selectQuery).
			WithArgs("clerk|new").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("user2", "clerk|new", now, now))

		user, err := adapter.GetOrCreateBySubject(ctx, "clerk|new")
		require.NoError(t, err)
		assert.Equal(t, "user2", user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
