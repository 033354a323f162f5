package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/observability"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/repository"
)

// AuthoringService is the only entry point for creating questions and their
// children. Both operations are atomic: either the full question graph
// commits or nothing is persisted.
type AuthoringService interface {
	CreateMCQQuestion(ctx context.Context, testID uint, payload dto.CreateMCQQuestionRequest) (dto.MCQQuestionResponse, error)
	CreateCodingQuestion(ctx context.Context, testID uint, payload dto.CreateCodingQuestionRequest) (dto.CodingQuestionResponse, error)
}

// ErrTestNotFound indicates the owning test does not exist.
var ErrTestNotFound = errors.New("test not found")

// ErrInvalidSelection indicates the correct-option index does not reference
// one of the supplied options.
var ErrInvalidSelection = errors.New("invalid correct option selection")

// ErrMissingExpectedOutput indicates a test case without an expected output.
var ErrMissingExpectedOutput = errors.New("expected output is required")

// ErrOptionCountOutOfRange indicates the option list is outside the 2-10
// authoring bound.
var ErrOptionCountOutOfRange = errors.New("an MCQ question requires between 2 and 10 options")

// ErrTestCaseCountOutOfRange indicates the test-case list is outside the 2-10
// authoring bound.
var ErrTestCaseCountOutOfRange = errors.New("a coding question requires between 2 and 10 test cases")

// ErrInvalidDifficulty indicates an unrecognised difficulty level.
var ErrInvalidDifficulty = errors.New("difficulty must be Easy, Medium or Hard")

const (
	minChildren = 2
	maxChildren = 10
)

type authoringService struct {
	authoring repository.AuthoringRepository
	tests     repository.TestRepository
	cache     *redis.Client
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAuthoringService constructs the authoring service. The cache client may
// be nil; when set, a successful create invalidates the owning test's cached
// detail view.
func NewAuthoringService(authoringRepo repository.AuthoringRepository, testRepo repository.TestRepository, cache *redis.Client, validate *validator.Validate, logger zerolog.Logger) AuthoringService {
	return &authoringService{
		authoring: authoringRepo,
		tests:     testRepo,
		cache:     cache,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "authoring_service").Logger(),
	}
}

func (s *authoringService) invalidateTestCache(ctx context.Context, testID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, fmt.Sprintf("test:detail:%d", testID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("test_id", testID).Msg("failed to invalidate test detail cache")
	}
}

func (s *authoringService) CreateMCQQuestion(ctx context.Context, testID uint, payload dto.CreateMCQQuestionRequest) (dto.MCQQuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MCQQuestionResponse{}, err
	}

	if len(payload.Options) < minChildren || len(payload.Options) > maxChildren {
		return dto.MCQQuestionResponse{}, ErrOptionCountOutOfRange
	}

	if payload.CorrectOption < 0 || payload.CorrectOption >= len(payload.Options) {
		return dto.MCQQuestionResponse{}, fmt.Errorf("%w: index %d is not within the %d supplied options", ErrInvalidSelection, payload.CorrectOption, len(payload.Options))
	}

	if err := s.ensureTestExists(ctx, testID); err != nil {
		return dto.MCQQuestionResponse{}, err
	}

	marks := payload.Marks
	if marks <= 0 {
		marks = 1
	}

	question := models.MCQQuestion{
		QuestionText: s.sanitizer.Sanitize(strings.TrimSpace(payload.QuestionText)),
		Marks:        marks,
		TestID:       testID,
	}

	options := make([]models.MCQOption, 0, len(payload.Options))
	for _, option := range payload.Options {
		options = append(options, models.MCQOption{
			OptionText: s.sanitizer.Sanitize(strings.TrimSpace(option.OptionText)),
		})
	}

	if err := s.authoring.CreateMCQQuestion(ctx, &question, options, payload.CorrectOption); err != nil {
		if errors.Is(err, repository.ErrCorrectOptionOutOfRange) {
			return dto.MCQQuestionResponse{}, fmt.Errorf("%w: index %d is not within the %d supplied options", ErrInvalidSelection, payload.CorrectOption, len(options))
		}
		s.logger.Error().Err(err).Uint("test_id", testID).Msg("mcq creation rolled back")
		observability.AuthoringFailures().WithLabelValues("mcq").Inc()
		return dto.MCQQuestionResponse{}, err
	}

	observability.AuthoringCreated().WithLabelValues("mcq").Inc()
	s.invalidateTestCache(ctx, testID)
	s.logger.Info().Uint("test_id", testID).Uint("question_id", question.ID).Int("options", len(options)).Msg("mcq question created")
	return dto.NewMCQQuestionResponse(question), nil
}

func (s *authoringService) CreateCodingQuestion(ctx context.Context, testID uint, payload dto.CreateCodingQuestionRequest) (dto.CodingQuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CodingQuestionResponse{}, err
	}

	if len(payload.TestCases) < minChildren || len(payload.TestCases) > maxChildren {
		return dto.CodingQuestionResponse{}, ErrTestCaseCountOutOfRange
	}

	for i, testCase := range payload.TestCases {
		if strings.TrimSpace(testCase.ExpectedOutput) == "" {
			return dto.CodingQuestionResponse{}, fmt.Errorf("%w: test case %d", ErrMissingExpectedOutput, i+1)
		}
	}

	difficulty := payload.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(difficulty) {
		return dto.CodingQuestionResponse{}, ErrInvalidDifficulty
	}

	if err := s.ensureTestExists(ctx, testID); err != nil {
		return dto.CodingQuestionResponse{}, err
	}

	marks := payload.Marks
	if marks <= 0 {
		marks = 10
	}

	question := models.CodingQuestion{
		ProblemStatement: s.sanitizer.Sanitize(strings.TrimSpace(payload.ProblemStatement)),
		Marks:            marks,
		Difficulty:       difficulty,
		TestID:           testID,
		StarterCode: models.StarterCode{
			Python:     payload.StarterCode.Python,
			Java:       payload.StarterCode.Java,
			CPP:        payload.StarterCode.CPP,
			C:          payload.StarterCode.C,
			JavaScript: payload.StarterCode.JavaScript,
		},
	}

	cases := make([]models.TestCase, 0, len(payload.TestCases))
	for _, testCase := range payload.TestCases {
		hidden := true
		if testCase.IsHidden != nil {
			hidden = *testCase.IsHidden
		}
		cases = append(cases, models.TestCase{
			Input:          testCase.Input,
			ExpectedOutput: testCase.ExpectedOutput,
			IsHidden:       hidden,
		})
	}

	if err := s.authoring.CreateCodingQuestion(ctx, &question, cases); err != nil {
		s.logger.Error().Err(err).Uint("test_id", testID).Msg("coding question creation rolled back")
		observability.AuthoringFailures().WithLabelValues("coding").Inc()
		return dto.CodingQuestionResponse{}, err
	}

	observability.AuthoringCreated().WithLabelValues("coding").Inc()
	s.invalidateTestCache(ctx, testID)
	s.logger.Info().Uint("test_id", testID).Uint("question_id", question.ID).Int("test_cases", len(cases)).Msg("coding question created")
	return dto.NewCodingQuestionResponse(question, true), nil
}

func (s *authoringService) ensureTestExists(ctx context.Context, testID uint) error {
	if _, err := s.tests.GetByID(ctx, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestNotFound
		}
		return err
	}
	return nil
}
