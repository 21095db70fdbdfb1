package dto

import (
	"time"

	"coursecraft/internal/domain"
)

// GenerateCourseResponse echoes back the profile the curriculum was built
// from along with the generated document, matching what the save flow
// expects to receive again.
type GenerateCourseResponse struct {
	Status          string                  `json:"status"`
	Message         string                  `json:"message"`
	GeneratedCourse *domain.GeneratedCourse `json:"generatedCourse"`
	ReceivedData    domain.CourseRequest    `json:"receivedData"`
}

// SaveCourseRequest is the body of POST /api/courses.
type SaveCourseRequest struct {
	UserID          int64                   `json:"userId"`
	ReceivedData    CourseReceivedData      `json:"receivedData"`
	GeneratedCourse *domain.GeneratedCourse `json:"generatedCourse"`
}

// CourseReceivedData is the user profile echoed through generation.
// Duration is optional; when absent the course's totalWeeks is parsed
// instead.
type CourseReceivedData struct {
	Topic             string `json:"topic"`
	SkillLevel        string `json:"skillLevel"`
	LearningStyle     string `json:"learningStyle"`
	HoursPerWeek      string `json:"hoursPerWeek"`
	LearningGoals     string `json:"learningGoals"`
	ExistingKnowledge string `json:"existingKnowledge"`
	Duration          string `json:"duration,omitempty"`
}

// SaveCourseResponse returns the new course id.
type SaveCourseResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	CourseID int64  `json:"courseId"`
}

// CourseListItem is one saved course with parsed content and the viewer's
// progress.
type CourseListItem struct {
	ID                 int64                   `json:"id"`
	Topic              string                  `json:"topic"`
	Duration           int                     `json:"duration"`
	SkillLevel         string                  `json:"skill_level"`
	LearningGoals      string                  `json:"learning_goals"`
	GeneratedContent   *domain.GeneratedCourse `json:"generated_content"`
	CompletedResources []string                `json:"completed_resources"`
	CreatedAt          time.Time               `json:"created_at"`
}

// ListCoursesResponse is the envelope of GET /api/courses.
type ListCoursesResponse struct {
	Status  string           `json:"status"`
	Courses []CourseListItem `json:"courses"`
}

// ProgressResponse is the envelope of GET /api/course/:courseId/progress.
type ProgressResponse struct {
	Status             string   `json:"status"`
	CompletedResources []string `json:"completed_resources"`
}

// UpdateProgressRequest is the body of POST /api/course/:courseId/progress.
type UpdateProgressRequest struct {
	UserID             int64    `json:"userId"`
	CompletedResources []string `json:"completed_resources"`
}

// StatusResponse is a minimal success envelope.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
