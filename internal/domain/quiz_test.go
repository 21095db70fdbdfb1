package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion(id int, correct string) QuizQuestion {
	return QuizQuestion{
		QuestionID:   id,
		QuestionText: fmt.Sprintf("Question %d?", id),
		Options: []QuizOption{
			{Option: "A", Text: "first"},
			{Option: "B", Text: "second"},
			{Option: "C", Text: "third"},
			{Option: "D", Text: "fourth"},
		},
		CorrectOption: correct,
	}
}

func TestNewQuizSpec(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		spec, err := NewQuizSpec("Go concurrency", "Intermediate", "quiz")
		require.NoError(t, err)
		assert.Equal(t, DifficultyIntermediate, spec.Difficulty)
		assert.Equal(t, 5, spec.QuizType.QuestionCount())
	})

	t.Run("test type derives ten questions", func(t *testing.T) {
		spec, err := NewQuizSpec("SQL", "Advanced", "test")
		require.NoError(t, err)
		assert.Equal(t, 10, spec.QuizType.QuestionCount())
	})

	t.Run("empty topic rejected", func(t *testing.T) {
		_, err := NewQuizSpec("", "Beginner", "quiz")
		assert.Error(t, err)
	})

	t.Run("unknown difficulty rejected", func(t *testing.T) {
		_, err := NewQuizSpec("Go", "Impossible", "quiz")
		assert.Error(t, err)
	})

	t.Run("unknown quiz type rejected", func(t *testing.T) {
		_, err := NewQuizSpec("Go", "Beginner", "exam")
		assert.Error(t, err)
	})
}

func TestParseQuizPayload(t *testing.T) {
	t.Run("round trip preserves the payload", func(t *testing.T) {
		original := &QuizPayload{Questions: []QuizQuestion{validQuestion(1, "B"), validQuestion(2, "D")}}
		encoded, err := json.Marshal(original)
		require.NoError(t, err)

		parsed, err := ParseQuizPayload(string(encoded))
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("invalid json rejected", func(t *testing.T) {
		_, err := ParseQuizPayload(`{"questions": [}`)
		assert.Error(t, err)
	})

	t.Run("missing questions field rejected", func(t *testing.T) {
		_, err := ParseQuizPayload(`{"items": []}`)
		assert.Error(t, err)
	})

	t.Run("questions of wrong type rejected", func(t *testing.T) {
		_, err := ParseQuizPayload(`{"questions": "none"}`)
		assert.Error(t, err)
	})
}

func TestQuizPayloadValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		p := &QuizPayload{Questions: []QuizQuestion{validQuestion(1, "A")}}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty questions slice is schema-valid", func(t *testing.T) {
		p := &QuizPayload{Questions: []QuizQuestion{}}
		assert.NoError(t, p.Validate())
	})

	t.Run("three options rejected", func(t *testing.T) {
		q := validQuestion(1, "A")
		q.Options = q.Options[:3]
		p := &QuizPayload{Questions: []QuizQuestion{q}}
		assert.Error(t, p.Validate())
	})

	t.Run("duplicate option letter rejected", func(t *testing.T) {
		q := validQuestion(1, "A")
		q.Options[3].Option = "A"
		p := &QuizPayload{Questions: []QuizQuestion{q}}
		assert.Error(t, p.Validate())
	})

	t.Run("option letter outside A-D rejected", func(t *testing.T) {
		q := validQuestion(1, "A")
		q.Options[0].Option = "E"
		p := &QuizPayload{Questions: []QuizQuestion{q}}
		assert.Error(t, p.Validate())
	})

	t.Run("correct option not among options rejected", func(t *testing.T) {
		q := validQuestion(1, "E")
		p := &QuizPayload{Questions: []QuizQuestion{q}}
		assert.Error(t, p.Validate())
	})

	t.Run("duplicate question ids rejected", func(t *testing.T) {
		p := &QuizPayload{Questions: []QuizQuestion{validQuestion(7, "A"), validQuestion(7, "B")}}
		assert.Error(t, p.Validate())
	})

	t.Run("empty question text rejected", func(t *testing.T) {
		q := validQuestion(1, "A")
		q.QuestionText = ""
		p := &QuizPayload{Questions: []QuizQuestion{q}}
		assert.Error(t, p.Validate())
	})
}

func TestQuizPayloadSplit(t *testing.T) {
	t.Run("answer never appears in public view", func(t *testing.T) {
		p := &QuizPayload{Questions: []QuizQuestion{validQuestion(1, "B"), validQuestion(2, "C"), validQuestion(3, "A")}}
		public, key, err := p.Split()
		require.NoError(t, err)

		require.Len(t, public, 3)
		for i, q := range public {
			assert.Equal(t, p.Questions[i].QuestionID, q.QuestionID)
			assert.Equal(t, p.Questions[i].QuestionText, q.QuestionText)
			assert.Equal(t, p.Questions[i].Options, q.Options)

			encoded, err := json.Marshal(q)
			require.NoError(t, err)
			assert.NotContains(t, string(encoded), "correct_option")
		}

		assert.Equal(t, AnswerKey{1: "B", 2: "C", 3: "A"}, key)

		// Every recorded answer matches exactly one option letter of its question.
		for _, q := range p.Questions {
			letters := map[string]int{}
			for _, opt := range q.Options {
				letters[opt.Option]++
			}
			assert.Equal(t, 1, letters[key[q.QuestionID]])
		}
	})

	t.Run("zero questions rejected", func(t *testing.T) {
		p := &QuizPayload{Questions: []QuizQuestion{}}
		_, _, err := p.Split()
		require.Error(t, err)
		de, ok := AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, CodeEmptyQuiz, de.Code)
	})
}
