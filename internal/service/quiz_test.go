package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// quizFixture builds generator output for len(answers) questions whose
// correct options are given by answers, wrapped in a markdown fence the way
// real models tend to respond.
func quizFixture(t *testing.T, answers map[int]string) string {
	t.Helper()
	payload := domain.QuizPayload{}
	for id := 1; id <= len(answers); id++ {
		payload.Questions = append(payload.Questions, domain.QuizQuestion{
			QuestionID:   id,
			QuestionText: fmt.Sprintf("Question %d?", id),
			Options: []domain.QuizOption{
				{Option: "A", Text: "option a"},
				{Option: "B", Text: "option b"},
				{Option: "C", Text: "option c"},
				{Option: "D", Text: "option d"},
			},
			CorrectOption: answers[id],
		})
	}
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	return "Here is your quiz:\n```json\n" + string(encoded) + "\n```"
}

func newQuizServiceForTest(generator domain.ContentGenerator, results *MockQuizResultRepository) (QuizService, PendingQuizStore) {
	store := NewPendingQuizStore(10 * time.Minute)
	return NewQuizService(generator, store, results), store
}

func TestQuizService_GenerateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("success parks answer key and strips answers from response", func(t *testing.T) {
		generator := new(MockContentGenerator)
		results := new(MockQuizResultRepository)
		svc, store := newQuizServiceForTest(generator, results)

		answers := map[int]string{1: "A", 2: "B", 3: "C", 4: "D", 5: "A"}
		generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
			Return(quizFixture(t, answers), nil).Once()

		resp, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID:   42,
			UserID:     7,
			Topic:      "Go concurrency",
			Difficulty: "Intermediate",
			QuizType:   "quiz",
		})
		require.NoError(t, err)
		assert.Equal(t, "success", resp.Status)
		require.Len(t, resp.Questions, 5)

		encoded, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(encoded), "correct_option")

		key, ok := store.Take(domain.QuizIdentity{UserID: 7, CourseID: 42})
		require.True(t, ok)
		assert.Equal(t, domain.AnswerKey(answers), key)
		generator.AssertExpectations(t)
	})

	t.Run("invalid spec rejected before any generator call", func(t *testing.T) {
		generator := new(MockContentGenerator)
		svc, _ := newQuizServiceForTest(generator, new(MockQuizResultRepository))

		_, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID: 42, UserID: 7, Topic: "Go", Difficulty: "Wild", QuizType: "quiz",
		})
		require.Error(t, err)
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeInvalidInput, de.Code)
		generator.AssertNotCalled(t, "GenerateQuizSource")
	})

	t.Run("generator failure surfaces unretried", func(t *testing.T) {
		generator := new(MockContentGenerator)
		svc, store := newQuizServiceForTest(generator, new(MockQuizResultRepository))

		generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
			Return("", domain.NewGenerationFailedError(errors.New("connection refused"))).Once()

		_, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID: 42, UserID: 7, Topic: "Go", Difficulty: "Beginner", QuizType: "quiz",
		})
		require.Error(t, err)
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeGenerationFailed, de.Code)

		_, ok = store.Take(domain.QuizIdentity{UserID: 7, CourseID: 42})
		assert.False(t, ok, "no answer key may be parked on failure")
	})

	t.Run("response without json fails as malformed", func(t *testing.T) {
		generator := new(MockContentGenerator)
		svc, _ := newQuizServiceForTest(generator, new(MockQuizResultRepository))

		generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
			Return("I cannot help with that.", nil).Once()

		_, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID: 42, UserID: 7, Topic: "Go", Difficulty: "Beginner", QuizType: "quiz",
		})
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeMalformedResponse, de.Code)
	})

	t.Run("schema violation fails as malformed", func(t *testing.T) {
		generator := new(MockContentGenerator)
		svc, _ := newQuizServiceForTest(generator, new(MockQuizResultRepository))

		// correct_option missing from the options set
		generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
			Return(`{"questions": [{"question_id": 1, "question_text": "Q?", "options": [
				{"option": "A", "text": "a"}, {"option": "B", "text": "b"},
				{"option": "C", "text": "c"}, {"option": "D", "text": "d"}],
				"correct_option": "E"}]}`, nil).Once()

		_, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID: 42, UserID: 7, Topic: "Go", Difficulty: "Beginner", QuizType: "quiz",
		})
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeMalformedResponse, de.Code)
	})

	t.Run("zero questions fails as empty quiz", func(t *testing.T) {
		generator := new(MockContentGenerator)
		svc, _ := newQuizServiceForTest(generator, new(MockQuizResultRepository))

		generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
			Return(`{"questions": []}`, nil).Once()

		_, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
			CourseID: 42, UserID: 7, Topic: "Go", Difficulty: "Beginner", QuizType: "quiz",
		})
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeEmptyQuiz, de.Code)
	})
}

func TestQuizService_SubmitQuiz(t *testing.T) {
	ctx := context.Background()
	identity := domain.QuizIdentity{UserID: 7, CourseID: 42}

	t.Run("partial match scores only exact answers", func(t *testing.T) {
		results := new(MockQuizResultRepository)
		svc, store := newQuizServiceForTest(new(MockContentGenerator), results)

		store.Put(identity, domain.AnswerKey{1: "B", 2: "C"})
		results.On("SaveResult", ctx, mock.MatchedBy(func(r *models.QuizResult) bool {
			return r.UserID == 7 && r.CourseID == 42 && r.Score == 1 && r.TotalQuestions == 2
		})).Return(nil).Once()

		resp, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID:    42,
			UserID:      7,
			CourseTopic: "Go concurrency",
			Difficulty:  "Intermediate",
			QuizType:    "quiz",
			Answers:     map[int]string{1: "B", 2: "D"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Score)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "Quiz submitted! You scored 1 out of 2.", resp.Message)
		results.AssertExpectations(t)
	})

	t.Run("submission without pending key fails as session expired", func(t *testing.T) {
		svc, _ := newQuizServiceForTest(new(MockContentGenerator), new(MockQuizResultRepository))

		_, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID: 42, UserID: 7, Answers: map[int]string{1: "A"},
		})
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeSessionExpired, de.Code)
	})

	t.Run("replay fails even when the first submission was wrong", func(t *testing.T) {
		results := new(MockQuizResultRepository)
		svc, store := newQuizServiceForTest(new(MockContentGenerator), results)

		store.Put(identity, domain.AnswerKey{1: "B"})
		results.On("SaveResult", ctx, mock.Anything).Return(nil).Once()

		first, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID: 42, UserID: 7, Answers: map[int]string{1: "A"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, first.Score)

		_, err = svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID: 42, UserID: 7, Answers: map[int]string{1: "B"},
		})
		de, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeSessionExpired, de.Code)
		results.AssertNumberOfCalls(t, "SaveResult", 1)
	})

	t.Run("key is consumed even when persisting the result fails", func(t *testing.T) {
		results := new(MockQuizResultRepository)
		svc, store := newQuizServiceForTest(new(MockContentGenerator), results)

		store.Put(identity, domain.AnswerKey{1: "B"})
		results.On("SaveResult", ctx, mock.Anything).Return(errors.New("insert failed")).Once()

		_, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID: 42, UserID: 7, Answers: map[int]string{1: "B"},
		})
		require.Error(t, err)

		_, ok := store.Take(identity)
		assert.False(t, ok)
	})

	t.Run("missing course topic falls back to a generic label", func(t *testing.T) {
		results := new(MockQuizResultRepository)
		svc, store := newQuizServiceForTest(new(MockContentGenerator), results)

		store.Put(identity, domain.AnswerKey{1: "B"})
		results.On("SaveResult", ctx, mock.MatchedBy(func(r *models.QuizResult) bool {
			return r.Topic == "General Quiz"
		})).Return(nil).Once()

		_, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
			CourseID: 42, UserID: 7, Answers: map[int]string{1: "B"},
		})
		require.NoError(t, err)
		results.AssertExpectations(t)
	})
}

func TestQuizService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	generator := new(MockContentGenerator)
	results := new(MockQuizResultRepository)
	svc, _ := newQuizServiceForTest(generator, results)

	answers := map[int]string{1: "A", 2: "B", 3: "C", 4: "D", 5: "A"}
	generator.On("GenerateQuizSource", ctx, mock.AnythingOfType("domain.QuizSpec")).
		Return(quizFixture(t, answers), nil).Once()

	generated, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{
		CourseID:   42,
		UserID:     7,
		Topic:      "Go concurrency",
		Difficulty: "Intermediate",
		QuizType:   "quiz",
	})
	require.NoError(t, err)
	require.Len(t, generated.Questions, 5)

	// 3 of 5 correct
	submission := map[int]string{1: "A", 2: "B", 3: "C", 4: "A", 5: "B"}
	results.On("SaveResult", ctx, mock.MatchedBy(func(r *models.QuizResult) bool {
		return r.Score == 3 && r.TotalQuestions == 5
	})).Return(nil).Once()

	scored, err := svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
		CourseID:    42,
		UserID:      7,
		CourseTopic: "Go concurrency",
		Difficulty:  "Intermediate",
		QuizType:    "quiz",
		Answers:     submission,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, scored.Score)
	assert.Equal(t, 5, scored.Total)

	_, err = svc.SubmitQuiz(ctx, &dto.SubmitQuizRequest{
		CourseID: 42, UserID: 7, Answers: submission,
	})
	de, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeSessionExpired, de.Code)

	results.AssertExpectations(t)
	generator.AssertExpectations(t)
}
