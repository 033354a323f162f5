package models

import "time"

// Difficulty levels for coding questions.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether the value is a recognised difficulty level.
func ValidDifficulty(value string) bool {
	switch value {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StarterCode holds optional boilerplate per supported execution language.
type StarterCode struct {
	Python     string `gorm:"column:starter_code_python;type:text" json:"python,omitempty"`
	Java       string `gorm:"column:starter_code_java;type:text" json:"java,omitempty"`
	CPP        string `gorm:"column:starter_code_cpp;type:text" json:"cpp,omitempty"`
	C          string `gorm:"column:starter_code_c;type:text" json:"c,omitempty"`
	JavaScript string `gorm:"column:starter_code_javascript;type:text" json:"javascript,omitempty"`
}

// ForLanguage returns the starter snippet for the given language name.
func (s StarterCode) ForLanguage(language string) string {
	switch language {
	case "python":
		return s.Python
	case "java":
		return s.Java
	case "cpp":
		return s.CPP
	case "c":
		return s.C
	case "javascript":
		return s.JavaScript
	}
	return ""
}

// CodingQuestion is a programming problem owned by a test.
type CodingQuestion struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	ProblemStatement string      `gorm:"type:text;not null" json:"problem_statement"`
	Marks            int         `gorm:"not null;default:10" json:"marks"`
	Difficulty       string      `gorm:"size:20;not null;default:Medium" json:"difficulty"`
	StarterCode      StarterCode `gorm:"embedded" json:"starter_code"`
	TestID           uint        `gorm:"not null;index" json:"test_id"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	TestCases        []TestCase  `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"test_cases"`
}

// TestCase is one input/expected-output pair used to grade a coding question.
// Hidden cases are only ever used for grading, never shown to students.
type TestCase struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Input          string    `gorm:"type:text" json:"input"`
	ExpectedOutput string    `gorm:"type:text;not null" json:"expected_output"`
	IsHidden       bool      `gorm:"not null;default:true" json:"is_hidden"`
	QuestionID     uint      `gorm:"not null;index" json:"question_id"`
	CreatedAt      time.Time `json:"created_at"`
}
