package service

import (
	"testing"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newExamService(db *gorm.DB) *ExamService {
	return NewExamService(
		repository.NewExamRepository(db),
		repository.NewResultRepository(db),
		repository.NewStudentRepository(db),
		db,
	)
}

func seedExam(t *testing.T, db *gorm.DB, published bool) *model.Exam {
	t.Helper()

	exam := &model.Exam{
		Title:     "Weekly reading set",
		Category:  model.CategoryLiterature,
		Grade:     2,
		Type:      model.ExamAssigned,
		Published: published,
		Items: []model.ExamItem{
			{
				Title: "The lighthouse",
				Questions: []model.ExamQuestion{
					{Type: model.QuestionChoice, Prompt: "Pick one", Answers: []string{"B"}, Explanation: "B restates the thesis"},
					{Type: model.QuestionShort, Prompt: "Name the keeper", Answers: []string{"old keeper"}},
				},
			},
		},
	}
	require.NoError(t, db.Create(exam).Error)
	return exam
}

func TestSubmitAttemptGradesAndRecords(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	exam := seedExam(t, db, true)

	attempt, err := svc.SubmitAttempt(student.ID, exam.ID, map[string]string{
		"0-0": "B",
		"0-1": "nobody at all",
	}, time.Now().Add(-30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 2, attempt.Total)
	assert.Equal(t, 1, attempt.Correct)
	assert.Equal(t, 50, attempt.Score)
	require.NotZero(t, attempt.ResultID)

	var res model.ExamResult
	require.NoError(t, db.First(&res, attempt.ResultID).Error)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, "B", res.Answers["0-0"])
	assert.Equal(t, "nobody at all", res.Answers["0-1"])

	var recs []model.WrongAnswerRecord
	require.NoError(t, db.Where("exam_result_id = ?", attempt.ResultID).Find(&recs).Error)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].ItemIndex)
	assert.Equal(t, 1, recs[0].QuestionIndex)
	assert.Equal(t, "nobody at all", recs[0].Submitted)
	assert.Equal(t, "old keeper", recs[0].CorrectAnswer)
	assert.Equal(t, model.CategoryLiterature, recs[0].Category)
}

func TestSubmitAttemptMissingAnswersCountWrong(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	exam := seedExam(t, db, true)

	attempt, err := svc.SubmitAttempt(student.ID, exam.ID, map[string]string{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 0, attempt.Correct)
	assert.Equal(t, 0, attempt.Score)
	assert.Equal(t, int64(2), countWrongRecords(t, db, attempt.ResultID))
}

func TestSubmitAttemptUnpublished(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	exam := seedExam(t, db, false)

	_, err := svc.SubmitAttempt(student.ID, exam.ID, map[string]string{"0-0": "B"}, time.Time{})
	assert.ErrorIs(t, err, util.ErrExamNotPublished)
}

func TestGetForStudentHidesUnpublished(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	exam := seedExam(t, db, false)

	_, err := svc.GetForStudent(exam.ID)
	assert.ErrorIs(t, err, util.ErrExamNotPublished)

	_, err = svc.GetForStudent(99999)
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}

func TestCompletionStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	exam := seedExam(t, db, true)

	done := seedStudent(t, db, "Kim", 2, 3, 1)
	pending := seedStudent(t, db, "Lee", 2, 3, 2)

	attempt, err := svc.SubmitAttempt(done.ID, exam.ID, map[string]string{"0-0": "B", "0-1": "old keeper"}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 100, attempt.Score)

	entries, err := svc.CompletionStatus(exam.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := map[uint]CompletionEntry{}
	for _, e := range entries {
		byID[e.StudentID] = e
	}

	assert.True(t, byID[done.ID].Completed)
	assert.Equal(t, 100, byID[done.ID].Score)
	assert.NotNil(t, byID[done.ID].CompletedAt)
	assert.Equal(t, "Kim", byID[done.ID].Name)

	assert.False(t, byID[pending.ID].Completed)
	assert.Nil(t, byID[pending.ID].CompletedAt)
}
