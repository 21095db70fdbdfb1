package domain

import (
	"encoding/json"
	"fmt"
)

// CourseRequest carries the user's learning profile into course generation.
type CourseRequest struct {
	Topic             string `json:"topic"`
	SkillLevel        string `json:"skillLevel"`
	LearningStyle     string `json:"learningStyle"`
	HoursPerWeek      string `json:"hoursPerWeek"`
	LearningGoals     string `json:"learningGoals"`
	ExistingKnowledge string `json:"existingKnowledge"`
}

// CourseResource is a single learning resource inside a module.
type CourseResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// CourseModule is one week of a generated curriculum.
type CourseModule struct {
	Week             string           `json:"week"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Keywords         []string         `json:"keywords"`
	KeyTakeaways     []string         `json:"keyTakeaways"`
	ProjectIdea      string           `json:"projectIdea"`
	EstimatedHours   string           `json:"estimatedHours"`
	LearningOutcomes []string         `json:"learningOutcomes"`
	Resources        []CourseResource `json:"resources"`
}

// GeneratedCourse is the structured curriculum document produced by the
// generator and stored verbatim as JSON alongside the course row.
type GeneratedCourse struct {
	Title         string         `json:"title"`
	TotalWeeks    string         `json:"totalWeeks"`
	Prerequisites []string       `json:"prerequisites"`
	CourseSummary string         `json:"courseSummary"`
	Modules       []CourseModule `json:"modules"`
}

// ParseGeneratedCourse unmarshals and sanity-checks a course document.
func ParseGeneratedCourse(data string) (*GeneratedCourse, error) {
	var course GeneratedCourse
	if err := json.Unmarshal([]byte(data), &course); err != nil {
		return nil, fmt.Errorf("failed to parse course payload: %w", err)
	}
	if course.Title == "" {
		return nil, fmt.Errorf("course payload has no title")
	}
	if len(course.Modules) == 0 {
		return nil, fmt.Errorf("course payload has no modules")
	}
	return &course, nil
}
