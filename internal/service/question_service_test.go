package service

import (
	"testing"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(repository.NewQuestionRepository(db), repository.NewWrongAnswerRepository(db))
}

func seedGrammarQuestion(t *testing.T, db *gorm.DB) *model.Question {
	t.Helper()
	q := &model.Question{
		Type:        model.QuestionChoice,
		Prompt:      "Which sentence is passive voice?",
		Options:     []string{"A", "B", "C", "D"},
		Answers:     []string{"B"},
		Explanation: "The subject receives the action.",
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func TestSubmitAnswerCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	q := seedGrammarQuestion(t, db)

	res, err := svc.SubmitAnswer(student.ID, q.ID, "B")
	require.NoError(t, err)

	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1.0, res.Similarity)
	assert.Equal(t, "B", res.CorrectAnswer)

	var n int64
	require.NoError(t, db.Model(&model.WrongAnswerRecord{}).
		Where("student_id = ?", student.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmitAnswerIncorrectRecordsWrongAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	q := seedGrammarQuestion(t, db)

	res, err := svc.SubmitAnswer(student.ID, q.ID, "A")
	require.NoError(t, err)

	assert.False(t, res.IsCorrect)
	assert.Equal(t, "The subject receives the action.", res.Explanation)

	var rec model.WrongAnswerRecord
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&rec).Error)
	require.NotNil(t, rec.QuestionID)
	assert.Equal(t, q.ID, *rec.QuestionID)
	assert.Equal(t, "A", rec.Submitted)
	assert.Equal(t, "B", rec.CorrectAnswer)
	assert.Equal(t, model.CategoryGrammar, rec.Category)
	assert.False(t, rec.Reviewed)
}

// Repeated incorrect submissions each append their own record; this
// path deliberately carries no dedup check, unlike the regrade path.
func TestSubmitAnswerRepeatedIncorrectAppends(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	q := seedGrammarQuestion(t, db)

	for i := 0; i < 2; i++ {
		res, err := svc.SubmitAnswer(student.ID, q.ID, "A")
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
	}

	var n int64
	require.NoError(t, db.Model(&model.WrongAnswerRecord{}).
		Where("student_id = ? AND question_id = ?", student.ID, q.ID).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)

	_, err := svc.SubmitAnswer(student.ID, 99999, "A")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestQuestionCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)

	q, err := svc.Create(QuestionRequest{
		Type:    model.QuestionShort,
		Prompt:  "Define alliteration",
		Answers: []string{"repeated initial sounds"},
	}, 1)
	require.NoError(t, err)
	require.NotZero(t, q.ID)

	updated, err := svc.Update(q.ID, QuestionRequest{
		Type:    model.QuestionShort,
		Prompt:  "Define alliteration in one phrase",
		Answers: []string{"repeated initial consonant sounds"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Define alliteration in one phrase", updated.Prompt)

	require.NoError(t, svc.Delete(q.ID))
	_, err = svc.Get(q.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
