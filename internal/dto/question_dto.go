package dto

import "github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"

// MCQOptionInput is one answer choice in an authoring request.
type MCQOptionInput struct {
	OptionText string `json:"option_text" validate:"required,max=300"`
}

// CreateMCQQuestionRequest is the payload for the MCQ creation protocol.
// CorrectOption is the zero-based index into Options.
type CreateMCQQuestionRequest struct {
	QuestionText  string           `json:"question_text" validate:"required,max=500"`
	Marks         int              `json:"marks" validate:"omitempty,gte=1"`
	Options       []MCQOptionInput `json:"options" validate:"required,min=2,max=10,dive"`
	CorrectOption int              `json:"correct_option" validate:"gte=0"`
}

// TestCaseInput is one test case in a coding-question authoring request.
// Input is optional; an absent input means the program receives no stdin.
type TestCaseInput struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output" validate:"required"`
	IsHidden       *bool  `json:"is_hidden"`
}

// StarterCodeInput carries the optional per-language boilerplate snippets.
type StarterCodeInput struct {
	Python     string `json:"python"`
	Java       string `json:"java"`
	CPP        string `json:"cpp"`
	C          string `json:"c"`
	JavaScript string `json:"javascript"`
}

// CreateCodingQuestionRequest is the payload for the coding-question creation
// protocol.
type CreateCodingQuestionRequest struct {
	ProblemStatement string           `json:"problem_statement" validate:"required"`
	Marks            int              `json:"marks" validate:"omitempty,gte=1"`
	Difficulty       string           `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	StarterCode      StarterCodeInput `json:"starter_code"`
	TestCases        []TestCaseInput  `json:"test_cases" validate:"required,min=2,max=10,dive"`
}

// MCQOptionResponse is one answer choice as returned to API consumers.
type MCQOptionResponse struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
}

// MCQQuestionResponse represents a persisted MCQ question.
type MCQQuestionResponse struct {
	ID              uint                `json:"id"`
	QuestionText    string              `json:"question_text"`
	Marks           int                 `json:"marks"`
	TestID          uint                `json:"test_id"`
	Options         []MCQOptionResponse `json:"options"`
	CorrectOptionID *uint               `json:"correct_option_id,omitempty"`
}

// TestCaseResponse represents a persisted test case. Hidden cases keep their
// id and flag but never expose input or expected output.
type TestCaseResponse struct {
	ID             uint   `json:"id"`
	Input          string `json:"input,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
	IsHidden       bool   `json:"is_hidden"`
}

// CodingQuestionResponse represents a persisted coding question.
type CodingQuestionResponse struct {
	ID               uint               `json:"id"`
	ProblemStatement string             `json:"problem_statement"`
	Marks            int                `json:"marks"`
	Difficulty       string             `json:"difficulty"`
	StarterCode      models.StarterCode `json:"starter_code"`
	TestID           uint               `json:"test_id"`
	TestCases        []TestCaseResponse `json:"test_cases"`
}

// NewMCQQuestionResponse builds a response DTO from a model.
func NewMCQQuestionResponse(question models.MCQQuestion) MCQQuestionResponse {
	options := make([]MCQOptionResponse, 0, len(question.Options))
	for _, option := range question.Options {
		options = append(options, MCQOptionResponse{ID: option.ID, OptionText: option.OptionText})
	}

	return MCQQuestionResponse{
		ID:              question.ID,
		QuestionText:    question.QuestionText,
		Marks:           question.Marks,
		TestID:          question.TestID,
		Options:         options,
		CorrectOptionID: question.CorrectOptionID,
	}
}

// NewCodingQuestionResponse builds a response DTO from a model, blanking
// hidden-case details unless includeHidden is set.
func NewCodingQuestionResponse(question models.CodingQuestion, includeHidden bool) CodingQuestionResponse {
	cases := make([]TestCaseResponse, 0, len(question.TestCases))
	for _, testCase := range question.TestCases {
		entry := TestCaseResponse{ID: testCase.ID, IsHidden: testCase.IsHidden}
		if includeHidden || !testCase.IsHidden {
			entry.Input = testCase.Input
			entry.ExpectedOutput = testCase.ExpectedOutput
		}
		cases = append(cases, entry)
	}

	return CodingQuestionResponse{
		ID:               question.ID,
		ProblemStatement: question.ProblemStatement,
		Marks:            question.Marks,
		Difficulty:       question.Difficulty,
		StarterCode:      question.StarterCode,
		TestID:           question.TestID,
		TestCases:        cases,
	}
}
