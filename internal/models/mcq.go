package models

import "time"

// MCQQuestion is a multiple-choice question owned by a test.
//
// CorrectOptionID is nullable because the row is staged before its options
// have identifiers; the authoring transaction wires it before commit, so a
// committed question always references one of its own options.
type MCQQuestion struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	QuestionText    string      `gorm:"size:500;not null" json:"question_text"`
	Marks           int         `gorm:"not null;default:1" json:"marks"`
	TestID          uint        `gorm:"not null;index" json:"test_id"`
	CorrectOptionID *uint       `json:"correct_option_id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Options         []MCQOption `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"options"`
}

// CorrectIndex returns the zero-based position of the correct option, or -1
// when the reference is unset or does not resolve into the owned options.
func (q MCQQuestion) CorrectIndex() int {
	if q.CorrectOptionID == nil {
		return -1
	}
	for i, option := range q.Options {
		if option.ID == *q.CorrectOptionID {
			return i
		}
	}
	return -1
}

// MCQOption is a single answer choice belonging to one MCQ question.
type MCQOption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OptionText string    `gorm:"size:300;not null" json:"option_text"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}
