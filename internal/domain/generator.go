package domain

import "context"

// ContentGenerator is the port to the external text-generation service.
// Both methods return the service's raw text output unmodified; recovering
// a structured payload from it is the caller's concern.
type ContentGenerator interface {
	// GenerateQuizSource requests a quiz matching spec.
	GenerateQuizSource(ctx context.Context, spec QuizSpec) (string, error)

	// GenerateCourseSource requests a week-by-week curriculum for req.
	GenerateCourseSource(ctx context.Context, req CourseRequest) (string, error)
}
