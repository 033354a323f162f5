package models

import "time"

// Test represents a timed assessment composed of MCQ and coding questions.
type Test struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"size:100;not null" json:"name"`
	DurationMinutes int              `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	MCQQuestions    []MCQQuestion    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"mcq_questions"`
	CodingQuestions []CodingQuestion `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"coding_questions"`
}

// QuestionCount returns the total number of questions attached to the test.
func (t Test) QuestionCount() int {
	return len(t.MCQQuestions) + len(t.CodingQuestions)
}

// TotalMarks sums the marks of every question on the test.
func (t Test) TotalMarks() int {
	total := 0
	for _, q := range t.MCQQuestions {
		total += q.Marks
	}
	for _, q := range t.CodingQuestions {
		total += q.Marks
	}
	return total
}
