// file: repository/session_repository.go

package repository

import (
	"database/sql"
	"errors"
	"go-auth-api/logger"
	"go-auth-api/model"
)

// ISessionRepository defines the contract for refresh token session storage.
// One row per user holds the single currently valid refresh token.
type ISessionRepository interface {
	GetSession(userID int) (*model.Session, error)
	ReplaceRefreshToken(userID int, token string) error
	CompareAndSetRefreshToken(userID int, oldToken, newToken string) (bool, error)
	ClearRefreshToken(userID int) error
}

// SessionRepository implements ISessionRepository.
type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// GetSession retrieves the session row for a user. A user without a row or
// with a cleared token gets an empty session, not an error.
func (r *SessionRepository) GetSession(userID int) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT user_id, COALESCE(refresh_token, ''), updated_at FROM sessions WHERE user_id = $1`
	err := r.DB.QueryRow(query, userID).Scan(&session.UserID, &session.RefreshToken, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.Session{UserID: userID}, nil
		}
		logger.Log.WithError(err).Error("Failed to execute get session query")
		return nil, err
	}
	return session, nil
}

// ReplaceRefreshToken unconditionally stores a new refresh token for the
// user, invalidating whatever token was there before. Used on login.
func (r *SessionRepository) ReplaceRefreshToken(userID int, token string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to replace refresh token")

	query := `INSERT INTO sessions (user_id, refresh_token, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW()`
	if _, err := r.DB.Exec(query, userID, token); err != nil {
		log.WithError(err).Error("Failed to execute replace refresh token query")
		return err
	}
	return nil
}

// CompareAndSetRefreshToken swaps the stored refresh token only if it still
// equals oldToken. The conditional UPDATE is a single atomic statement, so
// of two concurrent rotations using the same old token at most one can
// succeed; the other sees false.
func (r *SessionRepository) CompareAndSetRefreshToken(userID int, oldToken, newToken string) (bool, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to rotate refresh token")

	query := `UPDATE sessions SET refresh_token = $3, updated_at = NOW() WHERE user_id = $1 AND refresh_token = $2`
	result, err := r.DB.Exec(query, userID, oldToken, newToken)
	if err != nil {
		log.WithError(err).Error("Failed to execute rotate refresh token query")
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// ClearRefreshToken removes the stored refresh token for a user. Clearing a
// session that does not exist is not an error, which makes logout idempotent.
func (r *SessionRepository) ClearRefreshToken(userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to clear refresh token")

	query := `UPDATE sessions SET refresh_token = NULL, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.DB.Exec(query, userID); err != nil {
		log.WithError(err).Error("Failed to execute clear refresh token query")
		return err
	}
	return nil
}
