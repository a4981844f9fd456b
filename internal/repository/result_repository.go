package repository

import (
	"time"

	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(res *model.Result) error {
	return r.DB.Create(res).Error
}

func (r *ResultRepository) ListByStudent(studentID uint, category model.Category) ([]model.Result, error) {
	var results []model.Result
	query := r.DB.Where("student_id = ?", studentID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at desc").Find(&results).Error
	return results, err
}

func (r *ResultRepository) CreateExamResult(res *model.ExamResult) error {
	return r.DB.Create(res).Error
}

func (r *ResultRepository) FindExamResultByID(id uint) (*model.ExamResult, error) {
	var res model.ExamResult
	err := r.DB.First(&res, id).Error
	return &res, err
}

func (r *ResultRepository) ListExamResultsByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at desc").Find(&results).Error
	return results, err
}

// LatestExamResults returns each listed student's most recent attempt
// at the exam, keyed by student id.
func (r *ResultRepository) LatestExamResults(examID uint, studentIDs []uint) (map[uint]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("exam_id = ? AND student_id IN ?", examID, studentIDs).
		Order("created_at asc").Find(&results).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[uint]model.ExamResult, len(results))
	for _, res := range results {
		latest[res.StudentID] = res
	}
	return latest, nil
}

// ScoreRow is one attempt score for ranking aggregation.
type ScoreRow struct {
	StudentID uint
	Score     int
}

// ScoresByStudents collects every attempt score (passage and exam
// results alike) for the given students.
func (r *ResultRepository) ScoresByStudents(studentIDs []uint) ([]ScoreRow, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var rows []ScoreRow
	err := r.DB.Model(&model.Result{}).
		Select("student_id, score").
		Where("student_id IN ?", studentIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var examRows []ScoreRow
	err = r.DB.Model(&model.ExamResult{}).
		Select("student_id, score").
		Where("student_id IN ?", studentIDs).
		Scan(&examRows).Error
	if err != nil {
		return nil, err
	}

	return append(rows, examRows...), nil
}

// ExportRow is one spreadsheet line of the teacher results export.
type ExportRow struct {
	ResultID    uint      `json:"resultId"`
	StudentName string    `json:"studentName"`
	Grade       int       `json:"grade"`
	Class       int       `json:"class"`
	Number      int       `json:"number"`
	ExamTitle   string    `json:"examTitle"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// ListExamResultRows pages the teacher's results view, newest first.
func (r *ResultRepository) ListExamResultRows(examID *uint, page, limit int) ([]ExportRow, int64, error) {
	query := r.DB.Table("exam_results").
		Joins("JOIN students ON students.id = exam_results.student_id").
		Joins("JOIN users ON users.id = students.user_id").
		Joins("JOIN exams ON exams.id = exam_results.exam_id").
		Where("exam_results.deleted_at IS NULL")
	if examID != nil {
		query = query.Where("exam_results.exam_id = ?", *examID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ExportRow
	offset := (page - 1) * limit
	err := query.Select(`exam_results.id as result_id,
			users.name as student_name,
			students.grade, students.class, students.number,
			exams.title as exam_title,
			exam_results.score,
			exam_results.completed_at`).
		Order("exam_results.created_at desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

func (r *ResultRepository) ExportRows(examID *uint) ([]ExportRow, error) {
	var rows []ExportRow
	query := r.DB.Table("exam_results").
		Select(`exam_results.id as result_id,
			users.name as student_name,
			students.grade, students.class, students.number,
			exams.title as exam_title,
			exam_results.score,
			exam_results.completed_at`).
		Joins("JOIN students ON students.id = exam_results.student_id").
		Joins("JOIN users ON users.id = students.user_id").
		Joins("JOIN exams ON exams.id = exam_results.exam_id").
		Where("exam_results.deleted_at IS NULL")
	if examID != nil {
		query = query.Where("exam_results.exam_id = ?", *examID)
	}
	err := query.Order("students.grade, students.class, students.number, exam_results.created_at").
		Scan(&rows).Error
	return rows, err
}
