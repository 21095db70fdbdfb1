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

// ProgressRepository defines the interface for per-resource completion
// tracking.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, courseID int64) (*models.CourseProgress, error)
	UpsertProgress(ctx context.Context, progress *models.CourseProgress) error
}

type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new sqlx-backed ProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

// GetProgress retrieves a user's progress for one course. Returns (nil, nil)
// when no progress has been recorded.
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, userID, courseID int64) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	query := `SELECT user_id, course_id, completed_resources, updated_at
	          FROM user_course_progress WHERE user_id = $1 AND course_id = $2`

	err := r.db.GetContext(ctx, &progress, query, userID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course progress: %w", err)
	}
	return &progress, nil
}

// UpsertProgress inserts or replaces the completed-resources list for a
// (user, course) pair.
func (r *sqlxProgressRepository) UpsertProgress(ctx context.Context, progress *models.CourseProgress) error {
	query := `INSERT INTO user_course_progress (user_id, course_id, completed_resources, updated_at)
	          VALUES (:user_id, :course_id, :completed_resources, :updated_at)
	          ON CONFLICT (user_id, course_id)
	          DO UPDATE SET completed_resources = EXCLUDED.completed_resources, updated_at = EXCLUDED.updated_at`

	progress.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("failed to upsert course progress: %w", err)
	}
	return nil
}
