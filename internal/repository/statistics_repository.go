package repository

import (
	"time"

	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

// GroupStat is one average-and-count bucket of a grouped aggregation.
type GroupStat struct {
	Label    string  `json:"label"`
	AvgScore float64 `json:"avgScore"`
	Count    int64   `json:"count"`
}

// ByGrade averages exam scores per student grade.
func (r *StatisticsRepository) ByGrade() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Table("exam_results").
		Select("CAST(students.grade AS CHAR) as label, AVG(exam_results.score) as avg_score, COUNT(*) as count").
		Joins("JOIN students ON students.id = exam_results.student_id").
		Where("exam_results.deleted_at IS NULL").
		Group("students.grade").
		Order("students.grade").
		Scan(&stats).Error
	return stats, err
}

// ByClass averages exam scores per grade+class pair.
func (r *StatisticsRepository) ByClass() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Table("exam_results").
		Select("CONCAT(students.grade, '-', students.class) as label, AVG(exam_results.score) as avg_score, COUNT(*) as count").
		Joins("JOIN students ON students.id = exam_results.student_id").
		Where("exam_results.deleted_at IS NULL").
		Group("students.grade, students.class").
		Order("students.grade, students.class").
		Scan(&stats).Error
	return stats, err
}

// ByCategory averages passage-result scores per passage category.
func (r *StatisticsRepository) ByCategory() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Model(&model.Result{}).
		Select("category as label, AVG(score) as avg_score, COUNT(*) as count").
		Group("category").
		Order("category").
		Scan(&stats).Error
	return stats, err
}

// BySubcategory averages passage-result scores per passage subcategory.
func (r *StatisticsRepository) BySubcategory() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Table("results").
		Select("passages.subcategory as label, AVG(results.score) as avg_score, COUNT(*) as count").
		Joins("JOIN passages ON passages.id = results.passage_id").
		Where("results.deleted_at IS NULL AND passages.subcategory <> ''").
		Group("passages.subcategory").
		Order("passages.subcategory").
		Scan(&stats).Error
	return stats, err
}

// ByDifficulty averages passage-result scores per passage difficulty.
// Bucket ordering is applied by the service, not the query.
func (r *StatisticsRepository) ByDifficulty() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Table("results").
		Select("passages.difficulty as label, AVG(results.score) as avg_score, COUNT(*) as count").
		Joins("JOIN passages ON passages.id = results.passage_id").
		Where("results.deleted_at IS NULL").
		Group("passages.difficulty").
		Scan(&stats).Error
	return stats, err
}

// TrendPoint is one day of the attempt trend.
type TrendPoint struct {
	Date     string  `json:"date"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// DailyTrend aggregates exam attempts per day since the cutoff,
// chronologically.
func (r *StatisticsRepository) DailyTrend(since time.Time) ([]TrendPoint, error) {
	var points []TrendPoint
	err := r.DB.Model(&model.ExamResult{}).
		Select("DATE(created_at) as date, COUNT(*) as count, AVG(score) as avg_score").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date asc").
		Scan(&points).Error
	return points, err
}

// Totals for the summary dashboard.
type Totals struct {
	Students     int64   `json:"students"`
	Passages     int64   `json:"passages"`
	Exams        int64   `json:"exams"`
	Attempts     int64   `json:"attempts"`
	OverallAvg   float64 `json:"overallAvg"`
	WrongAnswers int64   `json:"wrongAnswers"`
}

func (r *StatisticsRepository) Summary() (*Totals, error) {
	var t Totals
	if err := r.DB.Model(&model.Student{}).Count(&t.Students).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Passage{}).Count(&t.Passages).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Exam{}).Count(&t.Exams).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.ExamResult{}).Count(&t.Attempts).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.WrongAnswerRecord{}).Count(&t.WrongAnswers).Error; err != nil {
		return nil, err
	}
	var avg *float64
	if err := r.DB.Model(&model.ExamResult{}).Select("AVG(score)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		t.OverallAvg = *avg
	}
	return &t, nil
}
