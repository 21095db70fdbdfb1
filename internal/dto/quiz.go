package dto

import "coursecraft/internal/domain"

// GenerateQuizRequest is the body of POST /api/course/:courseId/quiz.
// CourseID comes from the path.
type GenerateQuizRequest struct {
	CourseID   int64  `json:"-"`
	UserID     int64  `json:"userId"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	QuizType   string `json:"quizType"`
}

// GenerateQuizResponse carries the client-safe questions. Answer data never
// appears here.
type GenerateQuizResponse struct {
	Status    string                  `json:"status"`
	Questions []domain.PublicQuestion `json:"questions"`
}

// SubmitQuizRequest is the body of POST /api/course/:courseId/submit-quiz.
// Answers maps question id to the chosen option letter.
type SubmitQuizRequest struct {
	CourseID    int64          `json:"-"`
	UserID      int64          `json:"userId"`
	CourseTopic string         `json:"courseTopic"`
	Difficulty  string         `json:"difficulty"`
	QuizType    string         `json:"quizType"`
	Answers     map[int]string `json:"answers"`
}

// SubmitQuizResponse reports the score as both numbers and a human-readable
// message.
type SubmitQuizResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}
