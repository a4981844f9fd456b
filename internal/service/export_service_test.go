package service

import (
	"bytes"
	"testing"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteResultsXLSX(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repository.NewResultRepository(db))

	student := seedStudent(t, db, "Kim", 2, 3, 1)
	exam := &model.Exam{
		Title:     "Midterm reading check",
		Category:  model.CategoryLiterature,
		Grade:     2,
		Published: true,
		Items:     []model.ExamItem{{Questions: []model.ExamQuestion{{Type: model.QuestionChoice, Answers: []string{"A"}}}}},
	}
	require.NoError(t, db.Create(exam).Error)
	require.NoError(t, db.Create(&model.ExamResult{
		StudentID:   student.ID,
		ExamID:      exam.ID,
		Score:       80,
		Answers:     map[string]string{"0-0": "B"},
		StartedAt:   time.Now().Add(-time.Hour),
		CompletedAt: time.Now(),
	}).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteResultsXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Grade", "Class", "Number", "Name", "Exam", "Score", "Completed At"}, rows[0])
	assert.Equal(t, "Kim", rows[1][3])
	assert.Equal(t, "Midterm reading check", rows[1][4])
	assert.Equal(t, "80", rows[1][5])
}

func TestWriteResultsXLSXFiltersByExam(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repository.NewResultRepository(db))

	student := seedStudent(t, db, "Kim", 2, 3, 1)
	for _, title := range []string{"First set", "Second set"} {
		exam := &model.Exam{
			Title:     title,
			Category:  model.CategoryLiterature,
			Published: true,
			Items:     []model.ExamItem{{Questions: []model.ExamQuestion{{Type: model.QuestionChoice, Answers: []string{"A"}}}}},
		}
		require.NoError(t, db.Create(exam).Error)
		require.NoError(t, db.Create(&model.ExamResult{
			StudentID:   student.ID,
			ExamID:      exam.ID,
			Score:       90,
			Answers:     map[string]string{},
			StartedAt:   time.Now(),
			CompletedAt: time.Now(),
		}).Error)
	}

	var firstExam model.Exam
	require.NoError(t, db.Where("title = ?", "First set").First(&firstExam).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteResultsXLSX(&buf, &firstExam.ID))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First set", rows[1][4])
}
