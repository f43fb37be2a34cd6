package repository

import (
	"database/sql"
	"errors"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/lib/pq"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a unique constraint on email or
	// username is violated during registration.
	ErrDuplicateUser = errors.New("user already exists")
)

// IUserRepository defines the contract for user credential storage.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByIdentifier(identifier string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdatePassword(userID int, hashedPassword string) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user row. Duplicate email or username (the
// latter case-insensitive, enforced by a unique index on LOWER(username))
// is reported as ErrDuplicateUser.
func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (username, email, display_name, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Username, user.Email, user.DisplayName, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateUser
		}
		logger.Log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

// GetUserByIdentifier looks a user up by email or username. Username
// matching is case-insensitive.
func (r *UserRepository) GetUserByIdentifier(identifier string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, username, email, display_name, password, created_at FROM users WHERE email = $1 OR LOWER(username) = LOWER($1)`
	err := r.DB.QueryRow(query, identifier).Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get user by identifier query")
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, username, email, display_name, password, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get user by id query")
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *UserRepository) UpdatePassword(userID int, hashedPassword string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update user password")

	query := `UPDATE users SET password = $2 WHERE id = $1`
	result, err := r.DB.Exec(query, userID, hashedPassword)
	if err != nil {
		log.WithError(err).Error("Failed to execute update password query")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
