package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
)

func TestTestRepositoryGetByIDPreloadsQuestionGraph(t *testing.T) {
	db := setupTestDB(t)
	testRepo := NewTestRepository(db)
	authoring := NewAuthoringRepository(db)
	test := seedTest(t, db)

	mcq := models.MCQQuestion{QuestionText: "q", Marks: 1, TestID: test.ID}
	require.NoError(t, authoring.CreateMCQQuestion(context.Background(), &mcq, []models.MCQOption{{OptionText: "a"}, {OptionText: "b"}}, 1))

	coding := models.CodingQuestion{ProblemStatement: "p", Marks: 10, Difficulty: models.DifficultyMedium, TestID: test.ID}
	require.NoError(t, authoring.CreateCodingQuestion(context.Background(), &coding, []models.TestCase{
		{ExpectedOutput: "1"}, {ExpectedOutput: "2"},
	}))

	stored, err := testRepo.GetByID(context.Background(), test.ID)
	require.NoError(t, err)
	require.Len(t, stored.MCQQuestions, 1)
	require.Len(t, stored.MCQQuestions[0].Options, 2)
	require.Len(t, stored.CodingQuestions, 1)
	require.Len(t, stored.CodingQuestions[0].TestCases, 2)
	require.Equal(t, 2, stored.QuestionCount())
	require.Equal(t, 11, stored.TotalMarks())
}

func TestTestRepositoryDeleteCascadesThroughAllDescendants(t *testing.T) {
	db := setupTestDB(t)
	testRepo := NewTestRepository(db)
	authoring := NewAuthoringRepository(db)
	test := seedTest(t, db)

	// 2 MCQ questions with 3 options each, 1 coding question with 4 test
	// cases: 13 descendant rows in total.
	for i := 0; i < 2; i++ {
		question := models.MCQQuestion{QuestionText: "q", Marks: 1, TestID: test.ID}
		options := []models.MCQOption{{OptionText: "a"}, {OptionText: "b"}, {OptionText: "c"}}
		require.NoError(t, authoring.CreateMCQQuestion(context.Background(), &question, options, 0))
	}

	coding := models.CodingQuestion{ProblemStatement: "p", Marks: 10, Difficulty: models.DifficultyHard, TestID: test.ID}
	cases := []models.TestCase{
		{ExpectedOutput: "1"}, {ExpectedOutput: "2"}, {ExpectedOutput: "3"}, {ExpectedOutput: "4"},
	}
	require.NoError(t, authoring.CreateCodingQuestion(context.Background(), &coding, cases))

	require.EqualValues(t, 2, countRows(t, db, &models.MCQQuestion{}))
	require.EqualValues(t, 6, countRows(t, db, &models.MCQOption{}))
	require.EqualValues(t, 1, countRows(t, db, &models.CodingQuestion{}))
	require.EqualValues(t, 4, countRows(t, db, &models.TestCase{}))

	require.NoError(t, testRepo.Delete(context.Background(), test.ID))

	require.EqualValues(t, 0, countRows(t, db, &models.Test{}))
	require.EqualValues(t, 0, countRows(t, db, &models.MCQQuestion{}))
	require.EqualValues(t, 0, countRows(t, db, &models.MCQOption{}))
	require.EqualValues(t, 0, countRows(t, db, &models.CodingQuestion{}))
	require.EqualValues(t, 0, countRows(t, db, &models.TestCase{}))
}

func TestTestRepositoryDeleteMissingTestReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	testRepo := NewTestRepository(db)

	err := testRepo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTestRepositoryListReturnsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	testRepo := NewTestRepository(db)

	first := models.Test{Name: "first", DurationMinutes: 30}
	second := models.Test{Name: "second", DurationMinutes: 60}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	tests, err := testRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tests, 2)
	require.Equal(t, "second", tests[0].Name)
}
