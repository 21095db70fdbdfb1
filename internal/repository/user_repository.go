package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coursecraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new sqlx-backed UserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user and returns its generated id.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, created_at)
	          VALUES (:username, :password_hash, :email, :created_at)
	          RETURNING id`

	user.CreatedAt = time.Now()

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare query for CreateUser: %w", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, user); err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserByUsername retrieves a user by username. Returns (nil, nil) when
// no such user exists.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, email, created_at FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by its internal id. Returns (nil, nil) when
// no such user exists.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, email, created_at FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}
