package repository

import (
	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(e *model.Exam) error {
	return r.DB.Create(e).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var e model.Exam
	err := r.DB.First(&e, id).Error
	return &e, err
}

type ExamFilter struct {
	Category      model.Category
	Type          model.ExamType
	Grade         *int
	PublishedOnly bool
	CreatedBy     *uint
}

func (r *ExamRepository) List(f ExamFilter, page, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.DB.Model(&model.Exam{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Grade != nil {
		query = query.Where("grade = ?", *f.Grade)
	}
	if f.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if f.CreatedBy != nil {
		query = query.Where("created_by = ?", *f.CreatedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) Update(e *model.Exam) error {
	return r.DB.Save(e).Error
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exam{}, id).Error
}
