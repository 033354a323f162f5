package dto

import (
	"encoding/json"
	"time"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/pkg/judge"
)

// RunRequest is the payload for a free-form code run against the judge.
type RunRequest struct {
	Language string `json:"language" validate:"required"`
	Source   string `json:"source" validate:"required,min=1"`
	Stdin    string `json:"stdin"`
}

// RunResponse passes the judge's structured result through to the caller.
type RunResponse struct {
	Result judge.Result `json:"result"`
}

// GradeRequest is the payload for a graded submission against a coding
// question's test cases.
type GradeRequest struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	Language   string `json:"language" validate:"required"`
	Source     string `json:"source" validate:"required,min=1"`
}

// Case outcome values. An evaluation error is never reported as a wrong
// answer.
const (
	CaseOutcomePassed = "passed"
	CaseOutcomeFailed = "failed"
	CaseOutcomeError  = "error"
)

// CaseResult is the per-test-case outcome of a graded run. Details of hidden
// cases stay blank in student-facing responses.
type CaseResult struct {
	TestCaseID uint   `json:"test_case_id"`
	Hidden     bool   `json:"hidden"`
	Outcome    string `json:"outcome"`
	Verdict    string `json:"verdict,omitempty"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	Message    string `json:"message,omitempty"`
	Time       string `json:"time,omitempty"`
}

// SubmissionResponse represents a persisted graded submission.
type SubmissionResponse struct {
	ID          uint         `json:"id"`
	QuestionID  uint         `json:"question_id"`
	StudentID   uint         `json:"student_id"`
	Language    string       `json:"language"`
	Source      string       `json:"source,omitempty"`
	Status      string       `json:"status"`
	Score       float64      `json:"score"`
	CasesPassed int          `json:"cases_passed"`
	CasesTotal  int          `json:"cases_total"`
	CaseResults []CaseResult `json:"case_results"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewSubmissionResponse builds a response DTO from a model. Hidden-case
// stdout and verdict details are stripped unless includeHidden is set.
func NewSubmissionResponse(submission models.CodingSubmission, includeSource, includeHidden bool) SubmissionResponse {
	response := SubmissionResponse{
		ID:          submission.ID,
		QuestionID:  submission.QuestionID,
		StudentID:   submission.StudentID,
		Language:    submission.Language,
		Status:      submission.Status,
		Score:       submission.Score,
		CasesPassed: submission.CasesPassed,
		CasesTotal:  submission.CasesTotal,
		CreatedAt:   submission.CreatedAt,
	}

	if includeSource {
		response.Source = submission.Source
	}

	var cases []CaseResult
	if err := json.Unmarshal(submission.CaseResults, &cases); err == nil {
		for i := range cases {
			if cases[i].Hidden && !includeHidden {
				cases[i].Stdout = ""
				cases[i].Stderr = ""
				cases[i].Time = ""
			}
		}
		response.CaseResults = cases
	}

	return response
}
