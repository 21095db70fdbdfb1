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

// CourseRepository defines the interface for course persistence.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCoursesWithProgressByUserID(ctx context.Context, userID int64) ([]models.CourseWithProgress, error)
	GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error)
}

type sqlxCourseRepository struct {
	db *sqlx.DB
}

// NewSQLXCourseRepository creates a new sqlx-backed CourseRepository.
func NewSQLXCourseRepository(db *sqlx.DB) CourseRepository {
	return &sqlxCourseRepository{db: db}
}

// CreateCourse inserts a saved course and returns its generated id.
func (r *sqlxCourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	query := `INSERT INTO courses (topic, duration, skill_level, learning_goals, generated_content, user_id, created_at)
	          VALUES (:topic, :duration, :skill_level, :learning_goals, :generated_content, :user_id, :created_at)
	          RETURNING id`

	course.CreatedAt = time.Now()

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare query for CreateCourse: %w", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, course); err != nil {
		return 0, fmt.Errorf("failed to create course: %w", err)
	}
	return id, nil
}

// GetCoursesWithProgressByUserID lists a user's saved courses joined with
// their recorded progress, newest first.
func (r *sqlxCourseRepository) GetCoursesWithProgressByUserID(ctx context.Context, userID int64) ([]models.CourseWithProgress, error) {
	var courses []models.CourseWithProgress
	query := `SELECT c.id, c.user_id, c.topic, c.duration, c.skill_level, c.learning_goals,
	                 c.generated_content, c.created_at, p.completed_resources
	          FROM courses c
	          LEFT JOIN user_course_progress p ON c.id = p.course_id AND p.user_id = $1
	          WHERE c.user_id = $1
	          ORDER BY c.created_at DESC`

	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list courses for user: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a single course. Returns (nil, nil) when absent.
func (r *sqlxCourseRepository) GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error) {
	var course models.Course
	query := `SELECT id, user_id, topic, duration, skill_level, learning_goals, generated_content, created_at
	          FROM courses WHERE id = $1`

	err := r.db.GetContext(ctx, &course, query, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}
	return &course, nil
}
