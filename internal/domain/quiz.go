package domain

import (
	"encoding/json"
	"fmt"
)

// Difficulty of a generated quiz.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// QuizType selects the length of a generated quiz.
type QuizType string

const (
	QuizTypeQuiz QuizType = "quiz"
	QuizTypeTest QuizType = "test"
)

// QuestionCount derives the number of questions for the quiz type.
func (t QuizType) QuestionCount() int {
	if t == QuizTypeTest {
		return 10
	}
	return 5
}

// QuizSpec is the immutable input to quiz generation.
type QuizSpec struct {
	Topic      string
	Difficulty Difficulty
	QuizType   QuizType
}

// NewQuizSpec validates and builds a QuizSpec.
func NewQuizSpec(topic string, difficulty string, quizType string) (QuizSpec, error) {
	if topic == "" {
		return QuizSpec{}, NewInvalidInputError("topic is required")
	}
	switch Difficulty(difficulty) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return QuizSpec{}, NewInvalidInputError(fmt.Sprintf("invalid difficulty: %s", difficulty))
	}
	switch QuizType(quizType) {
	case QuizTypeQuiz, QuizTypeTest:
	default:
		return QuizSpec{}, NewInvalidInputError(fmt.Sprintf("invalid quiz type: %s", quizType))
	}
	return QuizSpec{
		Topic:      topic,
		Difficulty: Difficulty(difficulty),
		QuizType:   QuizType(quizType),
	}, nil
}

// QuizOption is one of the four lettered choices of a question.
type QuizOption struct {
	Option string `json:"option"`
	Text   string `json:"text"`
}

// QuizQuestion is the internal, post-extraction question representation.
// CorrectOption never leaves the process; Split removes it before anything
// is sent to a client.
type QuizQuestion struct {
	QuestionID    int          `json:"question_id"`
	QuestionText  string       `json:"question_text"`
	Options       []QuizOption `json:"options"`
	CorrectOption string       `json:"correct_option"`
}

// PublicQuestion is a QuizQuestion stripped of its answer.
type PublicQuestion struct {
	QuestionID   int          `json:"question_id"`
	QuestionText string       `json:"question_text"`
	Options      []QuizOption `json:"options"`
}

// AnswerKey maps question id to the correct option letter.
type AnswerKey map[int]string

// QuizIdentity keys a pending answer key to one user taking one course's quiz.
type QuizIdentity struct {
	UserID   int64
	CourseID int64
}

// QuizPayload is a full generated quiz as recovered from the generator.
type QuizPayload struct {
	Questions []QuizQuestion `json:"questions"`
}

var validOptionLetters = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// ParseQuizPayload unmarshals a JSON document and validates it against the
// quiz schema. Validation is all-or-nothing: any violation rejects the whole
// payload, with no per-field repair.
func ParseQuizPayload(data string) (*QuizPayload, error) {
	var payload QuizPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse quiz payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Validate checks the structural invariants of the payload: questions must
// be present, ids unique, each question carries exactly 4 uniquely lettered
// A-D options, and correct_option names one of them.
func (p *QuizPayload) Validate() error {
	if p.Questions == nil {
		return fmt.Errorf("payload has no questions field")
	}
	seenIDs := make(map[int]bool, len(p.Questions))
	for i, q := range p.Questions {
		if q.QuestionText == "" {
			return fmt.Errorf("question %d: empty question_text", i)
		}
		if seenIDs[q.QuestionID] {
			return fmt.Errorf("duplicate question_id %d", q.QuestionID)
		}
		seenIDs[q.QuestionID] = true
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d: expected 4 options, got %d", q.QuestionID, len(q.Options))
		}
		letters := make(map[string]bool, 4)
		for _, opt := range q.Options {
			if !validOptionLetters[opt.Option] {
				return fmt.Errorf("question %d: invalid option letter %q", q.QuestionID, opt.Option)
			}
			if letters[opt.Option] {
				return fmt.Errorf("question %d: duplicate option letter %q", q.QuestionID, opt.Option)
			}
			letters[opt.Option] = true
		}
		if !letters[q.CorrectOption] {
			return fmt.Errorf("question %d: correct_option %q not among options", q.QuestionID, q.CorrectOption)
		}
	}
	return nil
}

// Split produces the client-safe view and the private answer key. Question
// ordering is preserved. A payload with zero questions is rejected; a quiz
// must have at least one question.
func (p *QuizPayload) Split() ([]PublicQuestion, AnswerKey, error) {
	if len(p.Questions) == 0 {
		return nil, nil, NewEmptyQuizError()
	}
	public := make([]PublicQuestion, 0, len(p.Questions))
	key := make(AnswerKey, len(p.Questions))
	for _, q := range p.Questions {
		public = append(public, PublicQuestion{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
		key[q.QuestionID] = q.CorrectOption
	}
	return public, key, nil
}
