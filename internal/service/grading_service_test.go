package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/pkg/judge"
)

type stubQuestionRepo struct {
	question models.CodingQuestion
	err      error
}

func (s *stubQuestionRepo) GetByID(ctx context.Context, id uint) (models.CodingQuestion, error) {
	if s.err != nil {
		return models.CodingQuestion{}, s.err
	}
	if s.question.ID == 0 {
		return models.CodingQuestion{}, gorm.ErrRecordNotFound
	}
	return s.question, nil
}

type stubSubmissionRepo struct {
	created *models.CodingSubmission
	stored  models.CodingSubmission
	err     error
}

func (s *stubSubmissionRepo) Create(ctx context.Context, submission *models.CodingSubmission) error {
	if s.err != nil {
		return s.err
	}
	if submission.ID == 0 {
		submission.ID = 1
	}
	clone := *submission
	s.created = &clone
	s.stored = clone
	return nil
}

func (s *stubSubmissionRepo) GetByID(ctx context.Context, id uint) (models.CodingSubmission, error) {
	if s.err != nil {
		return models.CodingSubmission{}, s.err
	}
	if s.stored.ID == 0 {
		return models.CodingSubmission{}, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

// stubJudge returns a scripted result per stdin value so multi-case grading
// can mix outcomes.
type stubJudge struct {
	results map[string]judge.Result
	calls   int
}

func (s *stubJudge) Evaluate(ctx context.Context, submission judge.Submission) judge.Result {
	s.calls++
	if result, ok := s.results[submission.Stdin]; ok {
		return result
	}
	return judge.Result{Status: &judge.Status{ID: judge.StatusAccepted, Description: "Accepted"}}
}

func acceptedResult() judge.Result {
	return judge.Result{Status: &judge.Status{ID: judge.StatusAccepted, Description: "Accepted"}, Stdout: "ok\n"}
}

func wrongAnswerResult() judge.Result {
	return judge.Result{Status: &judge.Status{ID: 4, Description: "Wrong Answer"}, Stdout: "nope\n"}
}

func newGradingFixture(questions *stubQuestionRepo, submissions *stubSubmissionRepo, judgeClient judge.Client) GradingService {
	return NewGradingService(questions, submissions, judgeClient, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func sampleQuestion() models.CodingQuestion {
	return models.CodingQuestion{
		ID:         7,
		Marks:      10,
		Difficulty: models.DifficultyMedium,
		TestID:     1,
		TestCases: []models.TestCase{
			{ID: 1, Input: "a", ExpectedOutput: "1", IsHidden: false},
			{ID: 2, Input: "b", ExpectedOutput: "2", IsHidden: true},
			{ID: 3, Input: "c", ExpectedOutput: "3", IsHidden: true},
			{ID: 4, Input: "d", ExpectedOutput: "4", IsHidden: true},
		},
	}
}

func TestGradeAwardsFullMarksWhenAllCasesPass(t *testing.T) {
	submissions := &stubSubmissionRepo{}
	judgeClient := &stubJudge{}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, submissions, judgeClient)

	response, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)
	require.Equal(t, 4, judgeClient.calls, "every test case must be evaluated")
	require.Equal(t, models.CodingSubmissionStatusCompleted, response.Status)
	require.InDelta(t, 10.0, response.Score, 0.001)
	require.Equal(t, 4, response.CasesPassed)
	require.NotNil(t, submissions.created)
}

func TestGradeGivesPartialCreditPerPassingCase(t *testing.T) {
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"a": acceptedResult(),
		"b": wrongAnswerResult(),
		"c": acceptedResult(),
		"d": wrongAnswerResult(),
	}}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, &stubSubmissionRepo{}, judgeClient)

	response, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)
	require.Equal(t, models.CodingSubmissionStatusFailed, response.Status)
	require.InDelta(t, 5.0, response.Score, 0.001)
	require.Equal(t, 2, response.CasesPassed)
	require.Equal(t, 4, response.CasesTotal)
}

func TestGradeKeepsEvaluationErrorsDistinctFromWrongAnswers(t *testing.T) {
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"b": {Error: true, Message: "connection timed out"},
		"c": wrongAnswerResult(),
	}}
	submissions := &stubSubmissionRepo{}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, submissions, judgeClient)

	response, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)
	require.Equal(t, 4, judgeClient.calls, "a judge failure must not stop the remaining cases")
	require.Equal(t, 2, response.CasesPassed)

	outcomes := map[uint]string{}
	for _, caseResult := range response.CaseResults {
		outcomes[caseResult.TestCaseID] = caseResult.Outcome
	}
	require.Equal(t, dto.CaseOutcomePassed, outcomes[1])
	require.Equal(t, dto.CaseOutcomeError, outcomes[2])
	require.Equal(t, dto.CaseOutcomeFailed, outcomes[3])

	var persisted []dto.CaseResult
	require.NoError(t, json.Unmarshal(submissions.created.CaseResults, &persisted))
	require.Len(t, persisted, 4)
}

func TestGradeAllErroredCasesMarksSubmissionErrored(t *testing.T) {
	errored := judge.Result{Error: true, Message: "boom"}
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"a": errored, "b": errored, "c": errored, "d": errored,
	}}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, &stubSubmissionRepo{}, judgeClient)

	response, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)
	require.Equal(t, models.CodingSubmissionStatusError, response.Status)
	require.Zero(t, response.Score)
}

func TestGradeRejectsUnsupportedLanguage(t *testing.T) {
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, &stubSubmissionRepo{}, &stubJudge{})

	_, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "ruby", Source: "puts 1"})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestGradeUnknownQuestion(t *testing.T) {
	svc := newGradingFixture(&stubQuestionRepo{}, &stubSubmissionRepo{}, &stubJudge{})

	_, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 404, Language: "python", Source: "print(1)"})
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestRunPassesThroughJudgeResult(t *testing.T) {
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"": {Status: &judge.Status{ID: judge.StatusAccepted, Description: "Accepted"}, Stdout: "2\n"},
	}}
	svc := newGradingFixture(&stubQuestionRepo{}, &stubSubmissionRepo{}, judgeClient)

	response, err := svc.Run(context.Background(), dto.RunRequest{Language: "python", Source: "print(1+1)"})
	require.NoError(t, err)
	require.True(t, response.Result.Accepted())
	require.Equal(t, "2\n", response.Result.Stdout)
}

func TestRunReturnsJudgeErrorAsData(t *testing.T) {
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"": {Error: true, Message: "judge unavailable"},
	}}
	svc := newGradingFixture(&stubQuestionRepo{}, &stubSubmissionRepo{}, judgeClient)

	response, err := svc.Run(context.Background(), dto.RunRequest{Language: "python", Source: "print(1)"})
	require.NoError(t, err, "transport failures surface in the result, not as errors")
	require.True(t, response.Result.Error)
	require.Equal(t, "judge unavailable", response.Result.Message)
}

func TestGetSubmissionEnforcesOwnership(t *testing.T) {
	submissions := &stubSubmissionRepo{}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, submissions, &stubJudge{})

	_, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)

	_, err = svc.GetSubmission(context.Background(), 1, 8, "student")
	require.ErrorIs(t, err, ErrSubmissionForbidden)

	owned, err := svc.GetSubmission(context.Background(), 1, 9, "student")
	require.NoError(t, err)
	require.Equal(t, uint(9), owned.StudentID)

	asAdmin, err := svc.GetSubmission(context.Background(), 1, 2, "admin")
	require.NoError(t, err)
	require.Equal(t, uint(9), asAdmin.StudentID)
}

func TestGetSubmissionHidesHiddenCaseDetailsFromStudents(t *testing.T) {
	judgeClient := &stubJudge{results: map[string]judge.Result{
		"a": acceptedResult(), "b": acceptedResult(), "c": acceptedResult(), "d": acceptedResult(),
	}}
	submissions := &stubSubmissionRepo{}
	svc := newGradingFixture(&stubQuestionRepo{question: sampleQuestion()}, submissions, judgeClient)

	_, err := svc.Grade(context.Background(), 9, dto.GradeRequest{QuestionID: 7, Language: "python", Source: "print(1)"})
	require.NoError(t, err)

	student, err := svc.GetSubmission(context.Background(), 1, 9, "student")
	require.NoError(t, err)
	for _, caseResult := range student.CaseResults {
		if caseResult.Hidden {
			require.Empty(t, caseResult.Stdout, "hidden case output must not leak to students")
		}
	}

	admin, err := svc.GetSubmission(context.Background(), 1, 1, "admin")
	require.NoError(t, err)
	seen := false
	for _, caseResult := range admin.CaseResults {
		if caseResult.Hidden && caseResult.Stdout != "" {
			seen = true
		}
	}
	require.True(t, seen, "admins see hidden case output")
}
