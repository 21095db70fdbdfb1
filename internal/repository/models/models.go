package models

import (
	"database/sql"
	"time"
)

// User is a local account row.
type User struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Email        sql.NullString `db:"email"`
	CreatedAt    time.Time      `db:"created_at"`
}

// Course is a saved generated course. GeneratedContent holds the full
// curriculum document as JSON, stored verbatim.
type Course struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	Topic            string    `db:"topic"`
	Duration         int       `db:"duration"`
	SkillLevel       string    `db:"skill_level"`
	LearningGoals    string    `db:"learning_goals"`
	GeneratedContent string    `db:"generated_content"`
	CreatedAt        time.Time `db:"created_at"`
}

// CourseWithProgress joins a course row with the viewing user's progress.
// CompletedResources is NULL when the user has recorded no progress yet.
type CourseWithProgress struct {
	Course
	CompletedResources sql.NullString `db:"completed_resources"`
}

// CourseProgress tracks which resources of a course a user has completed,
// as a JSON array of resource keys.
type CourseProgress struct {
	UserID             int64     `db:"user_id"`
	CourseID           int64     `db:"course_id"`
	CompletedResources string    `db:"completed_resources"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// QuizResult is the durable result log row written after scoring. The core
// only writes it; nothing reads it back on the scoring path.
type QuizResult struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	CourseID       int64     `db:"course_id"`
	Topic          string    `db:"topic"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	Difficulty     string    `db:"difficulty"`
	QuizType       string    `db:"quiz_type"`
	CreatedAt      time.Time `db:"created_at"`
}
