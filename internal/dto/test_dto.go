package dto

import (
	"time"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
)

// CreateTestRequest is the payload for creating a new assessment.
type CreateTestRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

// TestSummaryResponse is the list-view projection of a test.
type TestSummaryResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// TestResponse is the detail view of a test including its question graph.
type TestResponse struct {
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	DurationMinutes int                      `json:"duration_minutes"`
	TotalMarks      int                      `json:"total_marks"`
	MCQQuestions    []MCQQuestionResponse    `json:"mcq_questions"`
	CodingQuestions []CodingQuestionResponse `json:"coding_questions"`
	CreatedAt       time.Time                `json:"created_at"`
}

// NewTestSummaryResponse builds a summary DTO from a model.
func NewTestSummaryResponse(test models.Test) TestSummaryResponse {
	return TestSummaryResponse{
		ID:              test.ID,
		Name:            test.Name,
		DurationMinutes: test.DurationMinutes,
		CreatedAt:       test.CreatedAt,
	}
}

// NewTestResponse builds the detail DTO. Hidden test cases are blanked unless
// the viewer is an admin.
func NewTestResponse(test models.Test, includeHidden bool) TestResponse {
	response := TestResponse{
		ID:              test.ID,
		Name:            test.Name,
		DurationMinutes: test.DurationMinutes,
		TotalMarks:      test.TotalMarks(),
		MCQQuestions:    make([]MCQQuestionResponse, 0, len(test.MCQQuestions)),
		CodingQuestions: make([]CodingQuestionResponse, 0, len(test.CodingQuestions)),
		CreatedAt:       test.CreatedAt,
	}

	for _, question := range test.MCQQuestions {
		response.MCQQuestions = append(response.MCQQuestions, NewMCQQuestionResponse(question))
	}
	for _, question := range test.CodingQuestions {
		response.CodingQuestions = append(response.CodingQuestions, NewCodingQuestionResponse(question, includeHidden))
	}

	return response
}
