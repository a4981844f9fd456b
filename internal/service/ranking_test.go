package service

import (
	"testing"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankStudentsGappedTies(t *testing.T) {
	students := []model.Student{
		{BaseModel: model.BaseModel{ID: 1}, Grade: 2, Class: 1, Number: 1},
		{BaseModel: model.BaseModel{ID: 2}, Grade: 2, Class: 1, Number: 2},
		{BaseModel: model.BaseModel{ID: 3}, Grade: 2, Class: 1, Number: 3},
	}
	scores := []repository.ScoreRow{
		{StudentID: 1, Score: 90},
		{StudentID: 1, Score: 90},
		{StudentID: 2, Score: 90},
		{StudentID: 3, Score: 80},
	}

	entries := rankStudents(students, scores)
	require.Len(t, entries, 3)

	// tie at 90.0: more attempts sorts first, both share rank 1,
	// the next distinct score resumes at position 3
	assert.Equal(t, uint(1), entries[0].StudentID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[0].Attempts)

	assert.Equal(t, uint(2), entries[1].StudentID)
	assert.Equal(t, 1, entries[1].Rank)

	assert.Equal(t, uint(3), entries[2].StudentID)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 80.0, entries[2].AvgScore)
}

func TestRankStudentsExcludesNoAttempts(t *testing.T) {
	students := []model.Student{
		{BaseModel: model.BaseModel{ID: 1}},
		{BaseModel: model.BaseModel{ID: 2}},
	}
	scores := []repository.ScoreRow{{StudentID: 1, Score: 70}}

	entries := rankStudents(students, scores)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].StudentID)
}

func TestRankStudentsAverageRounding(t *testing.T) {
	students := []model.Student{{BaseModel: model.BaseModel{ID: 1}}}
	scores := []repository.ScoreRow{
		{StudentID: 1, Score: 90},
		{StudentID: 1, Score: 85},
		{StudentID: 1, Score: 80},
	}

	entries := rankStudents(students, scores)
	require.Len(t, entries, 1)
	assert.Equal(t, 85.0, entries[0].AvgScore)
}

func TestGetRankingAnonymizesOthers(t *testing.T) {
	db := newTestDB(t)
	studentRepo := repository.NewStudentRepository(db)
	resultRepo := repository.NewResultRepository(db)
	svc := NewRankingService(studentRepo, resultRepo, nil)

	me := seedStudent(t, db, "Kim", 2, 3, 1)
	peer := seedStudent(t, db, "Lee", 2, 3, 2)
	// same grade, different class: out of class scope
	other := seedStudent(t, db, "Park", 2, 4, 1)

	for studentID, score := range map[uint]int{me.ID: 80, peer.ID: 95, other.ID: 100} {
		require.NoError(t, db.Create(&model.Result{
			StudentID: studentID,
			PassageID: 1,
			Category:  model.CategoryLiterature,
			Score:     score,
			Total:     10,
			Correct:   score / 10,
		}).Error)
	}

	board, err := svc.GetRanking(me.UserID, "class")
	require.NoError(t, err)
	require.Len(t, board.Top5, 2)
	assert.Equal(t, "class", board.Scope)

	assert.Empty(t, board.Top5[0].Name)
	assert.Equal(t, 95.0, board.Top5[0].AvgScore)
	assert.Equal(t, 1, board.Top5[0].Rank)

	assert.Equal(t, "Kim", board.Top5[1].Name)
	assert.Equal(t, 2, board.Top5[1].Rank)

	require.NotNil(t, board.MyRank)
	assert.True(t, board.MyRank.IsMe)
	assert.Equal(t, 2, board.MyRank.Rank)
	assert.Equal(t, 80.0, board.MyRank.AvgScore)
}

func TestGetRankingGradeScope(t *testing.T) {
	db := newTestDB(t)
	studentRepo := repository.NewStudentRepository(db)
	resultRepo := repository.NewResultRepository(db)
	svc := NewRankingService(studentRepo, resultRepo, nil)

	me := seedStudent(t, db, "Kim", 2, 3, 1)
	other := seedStudent(t, db, "Park", 2, 4, 1)

	for studentID, score := range map[uint]int{me.ID: 80, other.ID: 100} {
		require.NoError(t, db.Create(&model.Result{
			StudentID: studentID,
			PassageID: 1,
			Category:  model.CategoryLiterature,
			Score:     score,
			Total:     10,
			Correct:   score / 10,
		}).Error)
	}

	board, err := svc.GetRanking(me.UserID, "grade")
	require.NoError(t, err)
	assert.Equal(t, "grade", board.Scope)
	require.Len(t, board.Top5, 2)
	require.NotNil(t, board.MyRank)
	assert.Equal(t, 2, board.MyRank.Rank)
}
