package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"coursecraft/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestSQLXCourseRepository_CreateCourse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXCourseRepository(db)

	course := &models.Course{
		UserID:           7,
		Topic:            "Go",
		Duration:         6,
		SkillLevel:       "Beginner",
		LearningGoals:    "Build a CLI",
		GeneratedContent: `{"title":"Go"}`,
	}

	mock.ExpectPrepare("INSERT INTO courses").
		ExpectQuery().
		WithArgs(course.Topic, course.Duration, course.SkillLevel, course.LearningGoals,
			course.GeneratedContent, course.UserID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.CreateCourse(context.Background(), course)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCourseRepository_GetCoursesWithProgressByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXCourseRepository(db)

	now := time.Now()
	columns := []string{"id", "user_id", "topic", "duration", "skill_level",
		"learning_goals", "generated_content", "created_at", "completed_resources"}

	t.Run("joins progress when present", func(t *testing.T) {
		mock.ExpectQuery("SELECT c.id, c.user_id").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(42), int64(7), "Go", 6, "Beginner", "Build a CLI", `{"title":"Go"}`, now, `["w1r0"]`).
				AddRow(int64(41), int64(7), "SQL", 4, "Intermediate", "Query tuning", `{"title":"SQL"}`, now, nil))

		courses, err := repo.GetCoursesWithProgressByUserID(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, int64(42), courses[0].ID)
		assert.True(t, courses[0].CompletedResources.Valid)
		assert.Equal(t, `["w1r0"]`, courses[0].CompletedResources.String)
		assert.False(t, courses[1].CompletedResources.Valid)
	})

	t.Run("no courses is an empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT c.id, c.user_id").
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(columns))

		courses, err := repo.GetCoursesWithProgressByUserID(context.Background(), 9)
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCourseRepository_GetCourseByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXCourseRepository(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, topic").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "topic", "duration",
				"skill_level", "learning_goals", "generated_content", "created_at"}).
				AddRow(int64(42), int64(7), "Go", 6, "Beginner", "Build a CLI", `{"title":"Go"}`, time.Now()))

		course, err := repo.GetCourseByID(context.Background(), 42)
		require.NoError(t, err)
		require.NotNil(t, course)
		assert.Equal(t, "Go", course.Topic)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, topic").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		course, err := repo.GetCourseByID(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, course)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
