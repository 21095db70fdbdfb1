package service

import (
	"context"
	"fmt"

	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/llmtext"
	"coursecraft/internal/logger"
	"coursecraft/internal/repository"
	"coursecraft/internal/repository/models"

	"go.uber.org/zap"
)

// QuizService owns the quiz lifecycle: generating a quiz for a course,
// parking its answer key in the pending store, and scoring the one
// submission allowed against it.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

type quizService struct {
	generator domain.ContentGenerator
	pending   PendingQuizStore
	results   repository.QuizResultRepository
}

// NewQuizService creates a new QuizService.
func NewQuizService(generator domain.ContentGenerator, pending PendingQuizStore, results repository.QuizResultRepository) QuizService {
	return &quizService{
		generator: generator,
		pending:   pending,
		results:   results,
	}
}

// GenerateQuiz runs the full generation pipeline: request raw text, recover
// and validate the payload, split off the answer key, and park the key
// under the (user, course) identity. Any prior pending quiz for that
// identity is implicitly invalidated by the new Put.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	spec, err := domain.NewQuizSpec(req.Topic, req.Difficulty, req.QuizType)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.GenerateQuizSource(ctx, spec)
	if err != nil {
		return nil, err
	}

	candidate, err := llmtext.ExtractObject(raw)
	if err != nil {
		// Raw text is kept in the log to debug prompt/schema drift offline.
		logger.Get().Error("No JSON object recovered from generator response",
			zap.Error(err),
			zap.String("raw_response", raw),
		)
		return nil, domain.NewMalformedResponseError(err)
	}

	payload, err := domain.ParseQuizPayload(candidate)
	if err != nil {
		logger.Get().Error("Generator response failed quiz schema validation",
			zap.Error(err),
			zap.String("raw_response", raw),
		)
		return nil, domain.NewMalformedResponseError(err)
	}

	questions, answerKey, err := payload.Split()
	if err != nil {
		return nil, err
	}

	identity := domain.QuizIdentity{UserID: req.UserID, CourseID: req.CourseID}
	s.pending.Put(identity, answerKey)

	logger.Get().Info("Quiz generated and answer key parked",
		zap.Int64("user_id", req.UserID),
		zap.Int64("course_id", req.CourseID),
		zap.Int("questions", len(questions)),
	)

	return &dto.GenerateQuizResponse{
		Status:    "success",
		Questions: questions,
	}, nil
}

// SubmitQuiz consumes the pending answer key for the submission's identity
// and scores each submitted answer against it. The key is consumed whether
// or not any answer matches, so a replay always fails with SESSION_EXPIRED.
func (s *quizService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	identity := domain.QuizIdentity{UserID: req.UserID, CourseID: req.CourseID}

	answerKey, ok := s.pending.Take(identity)
	if !ok {
		return nil, domain.NewSessionExpiredError()
	}

	score := 0
	for questionID, submitted := range req.Answers {
		if answerKey[questionID] == submitted {
			score++
		}
	}
	total := len(req.Answers)

	topic := req.CourseTopic
	if topic == "" {
		topic = "General Quiz"
	}

	result := &models.QuizResult{
		UserID:         req.UserID,
		CourseID:       req.CourseID,
		Topic:          topic,
		Score:          score,
		TotalQuestions: total,
		Difficulty:     req.Difficulty,
		QuizType:       req.QuizType,
	}
	if err := s.results.SaveResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to save your quiz score.", err)
	}

	return &dto.SubmitQuizResponse{
		Status:  "success",
		Message: fmt.Sprintf("Quiz submitted! You scored %d out of %d.", score, total),
		Score:   score,
		Total:   total,
	}, nil
}
