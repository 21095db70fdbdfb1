package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"coursecraft/internal/cache"
	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/llmtext"
	"coursecraft/internal/logger"
	"coursecraft/internal/repository"
	"coursecraft/internal/repository/models"

	"go.uber.org/zap"
)

// CourseService covers course generation and the CRUD surface around it:
// saving, listing, and per-resource progress tracking.
type CourseService interface {
	GenerateCourse(ctx context.Context, req domain.CourseRequest) (*dto.GenerateCourseResponse, error)
	SaveCourse(ctx context.Context, req *dto.SaveCourseRequest) (*dto.SaveCourseResponse, error)
	ListCourses(ctx context.Context, userID int64) (*dto.ListCoursesResponse, error)
	GetProgress(ctx context.Context, userID, courseID int64) (*dto.ProgressResponse, error)
	UpdateProgress(ctx context.Context, courseID int64, req *dto.UpdateProgressRequest) error
}

type courseService struct {
	generator domain.ContentGenerator
	courses   repository.CourseRepository
	progress  repository.ProgressRepository
	cache     domain.Cache
	listTTL   time.Duration
}

// NewCourseService creates a new CourseService. cache may be nil, in which
// case listings are always served from the database.
func NewCourseService(
	generator domain.ContentGenerator,
	courses repository.CourseRepository,
	progress repository.ProgressRepository,
	cacheClient domain.Cache,
	listTTL time.Duration,
) CourseService {
	return &courseService{
		generator: generator,
		courses:   courses,
		progress:  progress,
		cache:     cacheClient,
		listTTL:   listTTL,
	}
}

// GenerateCourse runs the generation pipeline for a curriculum document and
// echoes the profile back so the client can hand both to SaveCourse.
func (s *courseService) GenerateCourse(ctx context.Context, req domain.CourseRequest) (*dto.GenerateCourseResponse, error) {
	if req.Topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}

	raw, err := s.generator.GenerateCourseSource(ctx, req)
	if err != nil {
		return nil, err
	}

	candidate, err := llmtext.ExtractObject(raw)
	if err != nil {
		logger.Get().Error("No JSON object recovered from course generator response",
			zap.Error(err),
			zap.String("raw_response", raw),
		)
		return nil, domain.NewMalformedResponseError(err)
	}

	course, err := domain.ParseGeneratedCourse(candidate)
	if err != nil {
		logger.Get().Error("Generator response failed course schema validation",
			zap.Error(err),
			zap.String("raw_response", raw),
		)
		return nil, domain.NewMalformedResponseError(err)
	}

	return &dto.GenerateCourseResponse{
		Status:          "success",
		Message:         "Course and resources generated successfully!",
		GeneratedCourse: course,
		ReceivedData:    req,
	}, nil
}

// SaveCourse persists a generated course for a user.
func (s *courseService) SaveCourse(ctx context.Context, req *dto.SaveCourseRequest) (*dto.SaveCourseResponse, error) {
	if req.GeneratedCourse == nil || req.UserID == 0 ||
		req.ReceivedData.Topic == "" || req.ReceivedData.SkillLevel == "" || req.ReceivedData.LearningGoals == "" {
		return nil, domain.NewInvalidInputError("Missing required course data.")
	}

	durationSource := req.ReceivedData.Duration
	if durationSource == "" {
		durationSource = req.GeneratedCourse.TotalWeeks
	}

	content, err := json.Marshal(req.GeneratedCourse)
	if err != nil {
		return nil, domain.NewInternalError("Failed to serialize course content", err)
	}

	course := &models.Course{
		UserID:           req.UserID,
		Topic:            req.ReceivedData.Topic,
		Duration:         parseLeadingInt(durationSource),
		SkillLevel:       req.ReceivedData.SkillLevel,
		LearningGoals:    req.ReceivedData.LearningGoals,
		GeneratedContent: string(content),
	}

	courseID, err := s.courses.CreateCourse(ctx, course)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save course", err)
	}

	s.invalidateListCache(ctx, req.UserID)

	return &dto.SaveCourseResponse{
		Status:   "success",
		Message:  "Course saved successfully!",
		CourseID: courseID,
	}, nil
}

// ListCourses returns a user's saved courses joined with progress. The
// response is cached per user; a stored document that no longer parses
// degrades to a placeholder title rather than failing the whole listing.
func (s *courseService) ListCourses(ctx context.Context, userID int64) (*dto.ListCoursesResponse, error) {
	cacheKey := s.listCacheKey(userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.ListCoursesResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Discarding unreadable course list cache entry", zap.String("key", cacheKey))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Course list cache read failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	rows, err := s.courses.GetCoursesWithProgressByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch courses", err)
	}

	items := make([]dto.CourseListItem, 0, len(rows))
	for _, row := range rows {
		content, parseErr := domain.ParseGeneratedCourse(row.GeneratedContent)
		if parseErr != nil {
			logger.Get().Warn("Stored course content no longer parses",
				zap.Int64("course_id", row.ID),
				zap.Error(parseErr),
			)
			content = &domain.GeneratedCourse{Title: "Error: Could not load content"}
		}

		completed := []string{}
		if row.CompletedResources.Valid && row.CompletedResources.String != "" {
			if err := json.Unmarshal([]byte(row.CompletedResources.String), &completed); err != nil {
				completed = []string{}
			}
		}

		items = append(items, dto.CourseListItem{
			ID:                 row.ID,
			Topic:              row.Topic,
			Duration:           row.Duration,
			SkillLevel:         row.SkillLevel,
			LearningGoals:      row.LearningGoals,
			GeneratedContent:   content,
			CompletedResources: completed,
			CreatedAt:          row.CreatedAt,
		})
	}

	resp := &dto.ListCoursesResponse{Status: "success", Courses: items}

	if s.cache != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), s.listTTL); err != nil {
				logger.Get().Warn("Course list cache write failed", zap.Error(err), zap.String("key", cacheKey))
			}
		}
	}

	return resp, nil
}

// GetProgress returns the completed-resource keys for a (user, course)
// pair; absent progress is an empty list, not an error.
func (s *courseService) GetProgress(ctx context.Context, userID, courseID int64) (*dto.ProgressResponse, error) {
	progress, err := s.progress.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch course progress", err)
	}

	completed := []string{}
	if progress != nil && progress.CompletedResources != "" {
		if err := json.Unmarshal([]byte(progress.CompletedResources), &completed); err != nil {
			completed = []string{}
		}
	}

	return &dto.ProgressResponse{Status: "success", CompletedResources: completed}, nil
}

// UpdateProgress replaces the completed-resource list for a (user, course)
// pair.
func (s *courseService) UpdateProgress(ctx context.Context, courseID int64, req *dto.UpdateProgressRequest) error {
	if req.UserID == 0 || req.CompletedResources == nil {
		return domain.NewInvalidInputError("Invalid data provided.")
	}

	encoded, err := json.Marshal(req.CompletedResources)
	if err != nil {
		return domain.NewInternalError("Failed to serialize progress", err)
	}

	if err := s.progress.UpsertProgress(ctx, &models.CourseProgress{
		UserID:             req.UserID,
		CourseID:           courseID,
		CompletedResources: string(encoded),
	}); err != nil {
		return domain.NewInternalError("Failed to save progress", err)
	}

	s.invalidateListCache(ctx, req.UserID)
	return nil
}

func (s *courseService) listCacheKey(userID int64) string {
	return cache.GenerateCacheKey("course", "list", strconv.FormatInt(userID, 10))
}

func (s *courseService) invalidateListCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.listCacheKey(userID)); err != nil {
		logger.Get().Warn("Course list cache invalidation failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}
}

// parseLeadingInt reads the integer prefix of strings like "6 weeks".
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
