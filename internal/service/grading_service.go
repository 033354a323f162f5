package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/observability"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/repository"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/pkg/judge"
)

// GradingService drives the judge client: free-form runs and graded
// submissions that evaluate every test case of a coding question.
type GradingService interface {
	Run(ctx context.Context, payload dto.RunRequest) (dto.RunResponse, error)
	Grade(ctx context.Context, studentID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error)
	GetSubmission(ctx context.Context, id uint, viewerID uint, role string) (dto.SubmissionResponse, error)
}

// ErrUnsupportedLanguage indicates the requested language has no judge
// mapping.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrQuestionNotFound indicates the coding question cannot be located.
var ErrQuestionNotFound = errors.New("coding question not found")

// ErrSubmissionNotFound indicates the submission cannot be located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionForbidden indicates the caller may not view the submission.
var ErrSubmissionForbidden = errors.New("forbidden")

type gradingService struct {
	questions   repository.CodingQuestionRepository
	submissions repository.CodingSubmissionRepository
	judge       judge.Client
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewGradingService constructs the grading orchestrator.
func NewGradingService(questionRepo repository.CodingQuestionRepository, submissionRepo repository.CodingSubmissionRepository, judgeClient judge.Client, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		questions:   questionRepo,
		submissions: submissionRepo,
		judge:       judgeClient,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
	}
}

// Run performs a single free-form judge call with no expected output and no
// persistence. A judge transport failure comes back as an error-shaped result
// in the response body, not as a Go error.
func (s *gradingService) Run(ctx context.Context, payload dto.RunRequest) (dto.RunResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RunResponse{}, err
	}

	languageID, ok := judge.LanguageID(strings.ToLower(strings.TrimSpace(payload.Language)))
	if !ok {
		return dto.RunResponse{}, ErrUnsupportedLanguage
	}

	result := s.evaluate(ctx, judge.Submission{
		SourceCode: payload.Source,
		LanguageID: languageID,
		Stdin:      payload.Stdin,
	})

	return dto.RunResponse{Result: result}, nil
}

// Grade evaluates the student's code against every test case of the question
// and persists one submission with per-case outcomes. A judge failure on one
// case marks that case as an evaluation error and continues with the rest;
// score is marks scaled by the fraction of cases that passed.
func (s *gradingService) Grade(ctx context.Context, studentID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	languageID, ok := judge.LanguageID(strings.ToLower(strings.TrimSpace(payload.Language)))
	if !ok {
		return dto.SubmissionResponse{}, ErrUnsupportedLanguage
	}

	question, err := s.questions.GetByID(ctx, payload.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrQuestionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	results := make([]dto.CaseResult, 0, len(question.TestCases))
	passed := 0
	errored := 0

	for _, testCase := range question.TestCases {
		result := s.evaluate(ctx, judge.Submission{
			SourceCode:     payload.Source,
			LanguageID:     languageID,
			Stdin:          testCase.Input,
			ExpectedOutput: testCase.ExpectedOutput,
		})

		entry := dto.CaseResult{
			TestCaseID: testCase.ID,
			Hidden:     testCase.IsHidden,
			Stdout:     result.Stdout,
			Stderr:     result.Stderr,
			Time:       result.Time,
		}

		switch {
		case result.Error:
			entry.Outcome = dto.CaseOutcomeError
			entry.Message = result.Message
			errored++
		case result.Accepted():
			entry.Outcome = dto.CaseOutcomePassed
			entry.Verdict = result.Status.Description
			passed++
		default:
			entry.Outcome = dto.CaseOutcomeFailed
			if result.Status != nil {
				entry.Verdict = result.Status.Description
			}
			if result.CompileOutput != "" {
				entry.Message = result.CompileOutput
			}
		}

		results = append(results, entry)
	}

	total := len(results)
	score := 0.0
	if total > 0 {
		score = math.Round(float64(question.Marks)*float64(passed)/float64(total)*100) / 100
	}

	status := models.CodingSubmissionStatusFailed
	switch {
	case errored == total && total > 0:
		status = models.CodingSubmissionStatusError
	case passed == total && total > 0:
		status = models.CodingSubmissionStatusCompleted
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := models.CodingSubmission{
		QuestionID:  question.ID,
		StudentID:   studentID,
		Language:    strings.ToLower(strings.TrimSpace(payload.Language)),
		Source:      payload.Source,
		Status:      status,
		Score:       score,
		CasesPassed: passed,
		CasesTotal:  total,
		CaseResults: datatypes.JSON(encoded),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("question_id", question.ID).
		Uint("student_id", studentID).
		Int("passed", passed).
		Int("total", total).
		Float64("score", score).
		Msg("submission graded")

	return dto.NewSubmissionResponse(submission, true, false), nil
}

func (s *gradingService) GetSubmission(ctx context.Context, id uint, viewerID uint, role string) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	isAdmin := strings.EqualFold(strings.TrimSpace(role), "admin")
	if !isAdmin && submission.StudentID != viewerID {
		return dto.SubmissionResponse{}, ErrSubmissionForbidden
	}

	return dto.NewSubmissionResponse(submission, true, isAdmin), nil
}

func (s *gradingService) evaluate(ctx context.Context, submission judge.Submission) judge.Result {
	start := time.Now()
	result := s.judge.Evaluate(ctx, submission)
	observability.JudgeLatency().Observe(time.Since(start).Seconds())

	outcome := "success"
	if result.Error {
		outcome = "error"
	}
	observability.JudgeCalls().WithLabelValues(outcome).Inc()

	return result
}
