package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
)

// CodingQuestionRepository exposes read access to coding questions for the
// grading path. All writes go through the authoring repository.
type CodingQuestionRepository interface {
	GetByID(ctx context.Context, id uint) (models.CodingQuestion, error)
}

// NewCodingQuestionRepository constructs a coding question repository.
func NewCodingQuestionRepository(db *gorm.DB) CodingQuestionRepository {
	return &codingQuestionRepository{db: db}
}

type codingQuestionRepository struct {
	db *gorm.DB
}

func (r *codingQuestionRepository) GetByID(ctx context.Context, id uint) (models.CodingQuestion, error) {
	var question models.CodingQuestion
	err := r.db.WithContext(ctx).
		Preload("TestCases").
		First(&question, id).Error
	if err != nil {
		return models.CodingQuestion{}, err
	}
	return question, nil
}
