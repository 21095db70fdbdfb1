package llmgen

import (
	"fmt"
	"strings"

	"coursecraft/internal/domain"
)

const quizSystemPrompt = "You are a quiz generator. You MUST respond with ONLY the valid JSON object requested. " +
	"Do not add any introductory text, conversation, or markdown ticks. Your response must start with { and end with }."

const courseSystemPrompt = "You are an expert curriculum designer. You MUST respond with ONLY the valid JSON object requested. " +
	"Do not add any introductory text, conversation, or markdown ticks. Your response must start with { and end with }."

const quizPromptTemplate = `
You are a quiz-generation expert. Your task is to create a challenging but fair quiz.

**QUIZ DETAILS:**
- **Topic:** "%s"
- **Difficulty:** "%s"
- **Type:** "%s"
- **Number of Questions:** %d

**INSTRUCTIONS:**
1.  The questions must be relevant to the topic and difficulty.
2.  All questions must be multiple-choice with 4 options (A, B, C, D).
3.  There must be only one correct option.
4.  Ensure the question_id for each question is a unique number.

**OUTPUT FORMAT (Strict JSON):**
Your entire response must be ONLY the JSON object. Do not add any extra text like "Here is your quiz".
Your response must start with { and end with }.

{
  "questions": [
    {
      "question_id": 1,
      "question_text": "A clear, specific question about the topic.",
      "options": [
        { "option": "A", "text": "A plausible but incorrect answer." },
        { "option": "B", "text": "The correct answer." },
        { "option": "C", "text": "Another plausible but incorrect answer." },
        { "option": "D", "text": "A third plausible but incorrect answer." }
      ],
      "correct_option": "B"
    }
  ]
}
`

const coursePromptTemplate = `
You are a world-class curriculum designer and subject-matter expert. Your task is to generate a comprehensive, personalized, week-by-week course.

**USER PROFILE:**
- **Topic:** "%s"
- **Current Skill Level:** "%s"
- **Learning Goals:** "%s"
- **Preferred Learning Style:** "%s"
- **Time Commitment:** "%s" hours per week
- **Existing Knowledge:** "%s"

**PERSONALIZATION INSTRUCTIONS:**
1.  **Skill Level:** Adjust the starting point. For "Beginner", start with fundamentals. For "Advanced", dive into complex topics.
2.  **Learning Style:** - "Project-Based": Make the projectIdea for each module the main focus.
    - "Visual": Include more links to "YouTube Video" and "Interactive Tutorial".
    - "Reading/Theoretical": Include more links to "Official Documentation" and "Article".
3.  **Goals:** The modules MUST be structured to achieve the user's specific learningGoals.
4.  **Time:** The totalWeeks and estimatedHours per module must be realistic for the user's hoursPerWeek.

**OUTPUT FORMAT (Strict JSON):**
Your entire response must be ONLY the JSON object. Do not add any extra text like "Here is your course".
Your response must start with { and end with }. Ensure all resource URLs are real, valid, and relevant, not placeholders.

{
  "title": "A compelling, catchy title for the course",
  "totalWeeks": "Calculated total weeks for the course (e.g., '6 weeks')",
  "prerequisites": ["A list of 2-3 essential skills the user should have before starting (be specific)"],
  "courseSummary": "A 2-3 sentence overview of what this course will achieve for the user.",
  "modules": [
    {
      "week": "Week number (e.g., 'Week 1')",
      "name": "Title of the module for this week",
      "description": "A summary of what this module covers and why it's important for the user's goals.",
      "keywords": ["List", "of", "key concepts"],
      "keyTakeaways": ["Key takeaway 1", "Key takeaway 2", "Key takeaway 3"],
      "projectIdea": "A small, practical project for the user to build this week to apply their knowledge. Make this relevant to their goals.",
      "estimatedHours": "An estimated number of hours for this module (e.g., '5 hours')",
      "learningOutcomes": ["Specific learning outcome 1", "Specific learning outcome 2"],
      "resources": [
        {
          "title": "A specific, real resource title",
          "url": "https://www.realsite.com/...",
          "type": "One of: 'YouTube Video', 'Official Documentation', 'Article', 'Interactive Tutorial', 'Book Recommendation'"
        }
      ]
    }
  ]
}
`

func buildQuizPrompt(spec domain.QuizSpec) string {
	return fmt.Sprintf(quizPromptTemplate,
		sanitizeField(spec.Topic),
		spec.Difficulty,
		spec.QuizType,
		spec.QuizType.QuestionCount(),
	)
}

func buildCoursePrompt(req domain.CourseRequest) string {
	return fmt.Sprintf(coursePromptTemplate,
		sanitizeField(req.Topic),
		sanitizeField(req.SkillLevel),
		sanitizeField(req.LearningGoals),
		sanitizeField(req.LearningStyle),
		sanitizeField(req.HoursPerWeek),
		sanitizeField(req.ExistingKnowledge),
	)
}

// sanitizeField keeps user-supplied free text from breaking out of the
// quoted prompt fields.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
