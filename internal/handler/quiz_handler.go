package handler

import (
	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation and submission requests.
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// GenerateQuiz handles POST /api/course/:courseId/quiz.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return domain.NewInvalidInputError("Invalid course ID.")
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}
	req.CourseID = int64(courseID)

	if req.UserID == 0 {
		return domain.NewInvalidInputError("User ID is required.")
	}

	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz handles POST /api/course/:courseId/submit-quiz.
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return domain.NewInvalidInputError("Invalid course ID.")
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}
	req.CourseID = int64(courseID)

	if req.UserID == 0 {
		return domain.NewInvalidInputError("User ID is required.")
	}
	if len(req.Answers) == 0 {
		return domain.NewInvalidInputError("Answers are required.")
	}

	resp, err := h.service.SubmitQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
