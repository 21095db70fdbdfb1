package handler

import (
	"strconv"

	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course generation, persistence, and progress
// requests.
type CourseHandler struct {
	service service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// GenerateCourse handles POST /api/course/generate.
func (h *CourseHandler) GenerateCourse(c *fiber.Ctx) error {
	var req domain.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}

	resp, err := h.service.GenerateCourse(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveCourse handles POST /api/courses.
func (h *CourseHandler) SaveCourse(c *fiber.Ctx) error {
	var req dto.SaveCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}

	resp, err := h.service.SaveCourse(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return domain.NewInvalidInputError("User ID is required.")
	}

	resp, err := h.service.ListCourses(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProgress handles GET /api/course/:courseId/progress.
func (h *CourseHandler) GetProgress(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return domain.NewInvalidInputError("Invalid course ID.")
	}
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return domain.NewInvalidInputError("User ID is required.")
	}

	resp, err := h.service.GetProgress(c.Context(), userID, int64(courseID))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateProgress handles POST /api/course/:courseId/progress.
func (h *CourseHandler) UpdateProgress(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return domain.NewInvalidInputError("Invalid course ID.")
	}

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid data provided.")
	}

	if err := h.service.UpdateProgress(c.Context(), int64(courseID), &req); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Status: "success", Message: "Progress saved."})
}
