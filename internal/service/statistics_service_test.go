package service

import (
	"testing"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDifficulty(t *testing.T) {
	stats := []repository.GroupStat{
		{Label: string(model.DifficultyOther)},
		{Label: string(model.DifficultyHigh3)},
		{Label: string(model.DifficultyMiddle)},
		{Label: string(model.DifficultyHigh12)},
	}

	sortDifficulty(stats)

	assert.Equal(t, string(model.DifficultyMiddle), stats[0].Label)
	assert.Equal(t, string(model.DifficultyHigh12), stats[1].Label)
	assert.Equal(t, string(model.DifficultyHigh3), stats[2].Label)
	assert.Equal(t, string(model.DifficultyOther), stats[3].Label)
}

func TestGetSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatisticsService(repository.NewStatisticsRepository(db), nil)

	student := seedStudent(t, db, "Kim", 2, 3, 1)
	require.NoError(t, db.Create(&model.Passage{
		Title:    "The lighthouse",
		Category: model.CategoryLiterature,
		Blocks:   []model.ContentBlock{{Paragraph: "text"}},
	}).Error)
	require.NoError(t, db.Create(&model.Exam{
		Title:    "Weekly set",
		Category: model.CategoryLiterature,
		Items:    []model.ExamItem{{Questions: []model.ExamQuestion{{Type: model.QuestionChoice, Answers: []string{"A"}}}}},
	}).Error)
	for _, score := range []int{70, 80} {
		require.NoError(t, db.Create(&model.ExamResult{
			StudentID:   student.ID,
			ExamID:      1,
			Score:       score,
			Answers:     map[string]string{},
			StartedAt:   time.Now(),
			CompletedAt: time.Now(),
		}).Error)
	}
	require.NoError(t, db.Create(&model.WrongAnswerRecord{
		StudentID:     student.ID,
		QuestionType:  model.QuestionChoice,
		CorrectAnswer: "A",
	}).Error)

	totals, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Students)
	assert.Equal(t, int64(1), totals.Passages)
	assert.Equal(t, int64(1), totals.Exams)
	assert.Equal(t, int64(2), totals.Attempts)
	assert.Equal(t, int64(1), totals.WrongAnswers)
	assert.Equal(t, 75.0, totals.OverallAvg)
}

func TestGetSummaryEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatisticsService(repository.NewStatisticsRepository(db), nil)

	totals, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Zero(t, totals.Attempts)
	assert.Zero(t, totals.OverallAvg)
}
