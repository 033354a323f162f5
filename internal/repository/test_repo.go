package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
)

// TestRepository exposes persistence operations for tests. Deletion is the
// only destructive operation and always cascades through the owned graph.
type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id uint) (models.Test, error)
	List(ctx context.Context) ([]models.Test, error)
	Delete(ctx context.Context, id uint) error
}

// NewTestRepository constructs a test repository.
func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

type testRepository struct {
	db *gorm.DB
}

func (r *testRepository) Create(ctx context.Context, test *models.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) GetByID(ctx context.Context, id uint) (models.Test, error) {
	var test models.Test
	err := r.db.WithContext(ctx).
		Preload("MCQQuestions.Options").
		Preload("CodingQuestions.TestCases").
		First(&test, id).Error
	if err != nil {
		return models.Test{}, err
	}
	return test, nil
}

func (r *testRepository) List(ctx context.Context) ([]models.Test, error) {
	var tests []models.Test
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

// Delete removes the test and every descendant row (questions, options, test
// cases, submissions) in one transaction, so no orphan can outlive its parent
// even when the underlying store does not enforce the FK cascade itself.
func (r *testRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test models.Test
		if err := tx.First(&test, id).Error; err != nil {
			return err
		}

		var mcqIDs []uint
		if err := tx.Model(&models.MCQQuestion{}).Where("test_id = ?", id).Pluck("id", &mcqIDs).Error; err != nil {
			return err
		}
		if len(mcqIDs) > 0 {
			// Clear the back-references first so the option delete cannot
			// trip the circular FK.
			if err := tx.Model(&models.MCQQuestion{}).Where("id IN ?", mcqIDs).Update("correct_option_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", mcqIDs).Delete(&models.MCQOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", mcqIDs).Delete(&models.MCQQuestion{}).Error; err != nil {
				return err
			}
		}

		var codingIDs []uint
		if err := tx.Model(&models.CodingQuestion{}).Where("test_id = ?", id).Pluck("id", &codingIDs).Error; err != nil {
			return err
		}
		if len(codingIDs) > 0 {
			if err := tx.Where("question_id IN ?", codingIDs).Delete(&models.TestCase{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", codingIDs).Delete(&models.CodingSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", codingIDs).Delete(&models.CodingQuestion{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Test{}, id).Error
	})
}
