package models

import (
	"time"

	"gorm.io/datatypes"
)

// CodingSubmissionStatus enumerates possible submission states.
const (
	CodingSubmissionStatusCompleted = "completed"
	CodingSubmissionStatusFailed    = "failed"
	CodingSubmissionStatusError     = "error"
)

// CodingSubmission records one graded run of student code against a coding
// question's test cases. CaseResults holds the per-case outcomes as JSON.
type CodingSubmission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	QuestionID  uint           `gorm:"not null;index" json:"question_id"`
	StudentID   uint           `gorm:"not null;index" json:"student_id"`
	Language    string         `gorm:"size:32;not null" json:"language"`
	Source      string         `gorm:"type:text;not null" json:"source"`
	Status      string         `gorm:"size:32;not null" json:"status"`
	Score       float64        `gorm:"not null;default:0" json:"score"`
	CasesPassed int            `gorm:"not null;default:0" json:"cases_passed"`
	CasesTotal  int            `gorm:"not null;default:0" json:"cases_total"`
	CaseResults datatypes.JSON `json:"case_results"`
	CreatedAt   time.Time      `json:"created_at"`
	Question    CodingQuestion `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Passed reports whether every test case passed.
func (s CodingSubmission) Passed() bool {
	return s.CasesTotal > 0 && s.CasesPassed == s.CasesTotal
}
