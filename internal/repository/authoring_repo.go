package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
)

// ErrCorrectOptionOutOfRange signals that the requested correct-option index
// does not land inside the materialized option set. It is re-checked inside
// the transaction so a question with a dangling reference can never commit.
var ErrCorrectOptionOutOfRange = errors.New("correct option index out of range")

// AuthoringRepository is the only write path for questions and their
// children. Both creation protocols are all-or-nothing: identifiers are
// materialized mid-transaction so the circular question/correct-option
// reference can be wired before commit, and any failure rolls back every
// staged row.
type AuthoringRepository interface {
	CreateMCQQuestion(ctx context.Context, question *models.MCQQuestion, options []models.MCQOption, correctIndex int) error
	CreateCodingQuestion(ctx context.Context, question *models.CodingQuestion, cases []models.TestCase) error
}

// NewAuthoringRepository constructs an authoring repository.
func NewAuthoringRepository(db *gorm.DB) AuthoringRepository {
	return &authoringRepository{db: db}
}

type authoringRepository struct {
	db *gorm.DB
}

// CreateMCQQuestion stages the question without its correct-option reference,
// stages all options, flushes so every row has an identifier, then resolves
// the reference to the option at correctIndex and commits.
func (r *authoringRepository) CreateMCQQuestion(ctx context.Context, question *models.MCQQuestion, options []models.MCQOption, correctIndex int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		question.CorrectOptionID = nil
		question.Options = nil
		if err := tx.Create(question).Error; err != nil {
			return err
		}

		for i := range options {
			options[i].QuestionID = question.ID
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}

		if correctIndex < 0 || correctIndex >= len(options) {
			return ErrCorrectOptionOutOfRange
		}

		correctID := options[correctIndex].ID
		if err := tx.Model(question).Update("correct_option_id", correctID).Error; err != nil {
			return err
		}

		question.CorrectOptionID = &correctID
		question.Options = options
		return nil
	})
}

// CreateCodingQuestion stages the question, flushes to obtain its identifier,
// then stages every test case against it and commits the whole set.
func (r *authoringRepository) CreateCodingQuestion(ctx context.Context, question *models.CodingQuestion, cases []models.TestCase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		question.TestCases = nil
		if err := tx.Create(question).Error; err != nil {
			return err
		}

		for i := range cases {
			cases[i].QuestionID = question.ID
		}
		if err := tx.Create(&cases).Error; err != nil {
			return err
		}

		question.TestCases = cases
		return nil
	})
}
