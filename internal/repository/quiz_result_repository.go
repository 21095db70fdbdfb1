package repository

import (
	"context"
	"fmt"
	"time"

	"coursecraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizResultRepository is the durable result log. The scoring flow only
// ever appends to it.
type QuizResultRepository interface {
	SaveResult(ctx context.Context, result *models.QuizResult) error
}

type sqlxQuizResultRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizResultRepository creates a new sqlx-backed QuizResultRepository.
func NewSQLXQuizResultRepository(db *sqlx.DB) QuizResultRepository {
	return &sqlxQuizResultRepository{db: db}
}

// SaveResult appends one scored-quiz row.
func (r *sqlxQuizResultRepository) SaveResult(ctx context.Context, result *models.QuizResult) error {
	query := `INSERT INTO user_quiz_results (user_id, course_id, topic, score, total_questions, difficulty, quiz_type, created_at)
	          VALUES (:user_id, :course_id, :topic, :score, :total_questions, :difficulty, :quiz_type, :created_at)`

	result.CreatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}
