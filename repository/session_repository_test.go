// file: repository/session_repository_test.go

package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSessionRepository_GetSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	query := regexp.QuoteMeta(`SELECT user_id, COALESCE(refresh_token, ''), updated_at FROM sessions WHERE user_id = $1`)

	t.Run("existing session", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "refresh_token", "updated_at"}).
			AddRow(1, "stored-token", time.Now())
		mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)

		session, err := repo.GetSession(1)

		assert.NoError(t, err)
		assert.Equal(t, "stored-token", session.RefreshToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no session row", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(2).WillReturnError(sql.ErrNoRows)

		session, err := repo.GetSession(2)

		assert.NoError(t, err)
		assert.Equal(t, 2, session.UserID)
		assert.Empty(t, session.RefreshToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_ReplaceRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (user_id, refresh_token, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW()`)).
		WithArgs(1, "new-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.ReplaceRefreshToken(1, "new-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_CompareAndSetRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	query := regexp.QuoteMeta(`UPDATE sessions SET refresh_token = $3, updated_at = NOW() WHERE user_id = $1 AND refresh_token = $2`)

	t.Run("token still current", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(1, "old-token", "new-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		swapped, err := repo.CompareAndSetRefreshToken(1, "old-token", "new-token")

		assert.NoError(t, err)
		assert.True(t, swapped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("token already rotated", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(1, "stale-token", "new-token").
			WillReturnResult(sqlmock.NewResult(0, 0))

		swapped, err := repo.CompareAndSetRefreshToken(1, "stale-token", "new-token")

		assert.NoError(t, err)
		assert.False(t, swapped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_ClearRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	query := regexp.QuoteMeta(`UPDATE sessions SET refresh_token = NULL, updated_at = NOW() WHERE user_id = $1`)

	// Clearing twice succeeds both times; the second call simply affects
	// an already-empty row.
	mock.ExpectExec(query).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ClearRefreshToken(1))
	assert.NoError(t, repo.ClearRefreshToken(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
