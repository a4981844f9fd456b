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

func newPassageService(db *gorm.DB) *PassageService {
	return NewPassageService(repository.NewPassageRepository(db), repository.NewResultRepository(db), db)
}

func seedPassage(t *testing.T, db *gorm.DB) *model.Passage {
	t.Helper()

	p := &model.Passage{
		Title:    "The lighthouse",
		Author:   "anon",
		Category: model.CategoryLiterature,
		Grade:    2,
		Blocks: []model.ContentBlock{
			{Paragraph: "The keeper climbed the stairs every night."},
		},
	}
	require.NoError(t, db.Create(p).Error)

	questions := []model.Question{
		{PassageID: &p.ID, Type: model.QuestionChoice, Prompt: "Pick one", Answers: []string{"C"}, Order: 1},
		{PassageID: &p.ID, Type: model.QuestionShort, Prompt: "Who climbed the stairs?", Answers: []string{"the keeper"}, Order: 2},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	return p
}

func TestPassageSubmitAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := newPassageService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	p := seedPassage(t, db)

	attempt, err := svc.SubmitAttempt(student.ID, p.ID, []string{"C", "a sailor"})
	require.NoError(t, err)

	assert.Equal(t, 2, attempt.Total)
	assert.Equal(t, 1, attempt.Correct)
	assert.Equal(t, 50, attempt.Score)
	require.Len(t, attempt.Details, 2)
	assert.True(t, attempt.Details[0].IsCorrect)
	assert.False(t, attempt.Details[1].IsCorrect)

	var res model.Result
	require.NoError(t, db.First(&res, attempt.ResultID).Error)
	assert.Equal(t, model.CategoryLiterature, res.Category)
	assert.Equal(t, 50, res.Score)

	var recs []model.WrongAnswerRecord
	require.NoError(t, db.Where("student_id = ?", student.ID).Find(&recs).Error)
	require.Len(t, recs, 1)
	assert.Equal(t, "a sailor", recs[0].Submitted)
	assert.Equal(t, "the keeper", recs[0].CorrectAnswer)
}

func TestPassageSubmitAttemptShortAnswerList(t *testing.T) {
	db := newTestDB(t)
	svc := newPassageService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)
	p := seedPassage(t, db)

	// answers shorter than the question list grade the rest as blank
	attempt, err := svc.SubmitAttempt(student.ID, p.ID, []string{"C"})
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Correct)
	assert.Equal(t, 50, attempt.Score)
}

func TestPassageSubmitAttemptNoQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newPassageService(db)
	student := seedStudent(t, db, "Kim", 2, 3, 1)

	p := &model.Passage{
		Title:    "Empty",
		Category: model.CategoryLiterature,
		Blocks:   []model.ContentBlock{{Paragraph: "text"}},
	}
	require.NoError(t, db.Create(p).Error)

	_, err := svc.SubmitAttempt(student.ID, p.ID, nil)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestPassageCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := newPassageService(db)

	p, err := svc.Create(PassageRequest{
		Title:    "Night tides",
		Category: model.CategoryNonliterature,
		Grade:    3,
		Blocks:   []model.ContentBlock{{Paragraph: "The tide turns twice a day."}},
	}, 1)
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	updated, err := svc.Update(p.ID, PassageRequest{
		Title:    "Night tides, revised",
		Category: model.CategoryNonliterature,
		Grade:    3,
		Blocks:   p.Blocks,
	})
	require.NoError(t, err)
	assert.Equal(t, "Night tides, revised", updated.Title)

	require.NoError(t, svc.Delete(p.ID))
	_, err = svc.Get(p.ID)
	assert.ErrorIs(t, err, util.ErrPassageNotFound)

	_, err = svc.Get(99999)
	assert.ErrorIs(t, err, util.ErrPassageNotFound)
}
