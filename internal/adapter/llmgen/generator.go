// Package llmgen talks to an OpenAI-compatible chat-completions endpoint
// (OpenRouter by default) to produce structured course and quiz content.
package llmgen

import (
	"context"
	"net/http"
	"time"

	"coursecraft/internal/config"
	"coursecraft/internal/domain"
	"coursecraft/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Generator implements domain.ContentGenerator over langchaingo's OpenAI
// client. It holds no request state; failures surface unretried.
type Generator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewGenerator creates a generator from LLM config. The base URL may point
// at any OpenAI-compatible provider.
func NewGenerator(cfg config.LLMConfig) (*Generator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, err
	}
	return &Generator{llm: llm, timeout: cfg.Timeout}, nil
}

// GenerateQuizSource requests a quiz for spec and returns the raw response
// text unmodified.
func (g *Generator) GenerateQuizSource(ctx context.Context, spec domain.QuizSpec) (string, error) {
	logger.Get().Info("Requesting quiz generation",
		zap.String("topic", spec.Topic),
		zap.String("difficulty", string(spec.Difficulty)),
		zap.String("quiz_type", string(spec.QuizType)),
		zap.Int("question_count", spec.QuizType.QuestionCount()),
	)
	return g.call(ctx, quizSystemPrompt, buildQuizPrompt(spec))
}

// GenerateCourseSource requests a curriculum for req and returns the raw
// response text unmodified.
func (g *Generator) GenerateCourseSource(ctx context.Context, req domain.CourseRequest) (string, error) {
	logger.Get().Info("Requesting course generation",
		zap.String("topic", req.Topic),
		zap.String("skill_level", req.SkillLevel),
	)
	return g.call(ctx, courseSystemPrompt, buildCoursePrompt(req))
}

func (g *Generator) call(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		llms.WithTemperature(0.7),
	)
	if err != nil {
		logger.Get().Error("Generation call failed", zap.Error(err))
		return "", domain.NewGenerationFailedError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewGenerationFailedError(nil)
	}
	return resp.Choices[0].Content, nil
}

var _ domain.ContentGenerator = (*Generator)(nil)
