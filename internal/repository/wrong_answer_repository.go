package repository

import (
	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type WrongAnswerRepository struct {
	DB *gorm.DB
}

func NewWrongAnswerRepository(db *gorm.DB) *WrongAnswerRepository {
	return &WrongAnswerRepository{DB: db}
}

func (r *WrongAnswerRepository) Create(rec *model.WrongAnswerRecord) error {
	return r.DB.Create(rec).Error
}

func (r *WrongAnswerRepository) FindByID(id uint) (*model.WrongAnswerRecord, error) {
	var rec model.WrongAnswerRecord
	err := r.DB.First(&rec, id).Error
	return &rec, err
}

type WrongAnswerFilter struct {
	Category model.Category
	Reviewed *bool
}

func (r *WrongAnswerRepository) ListByStudent(studentID uint, f WrongAnswerFilter, page, limit int) ([]model.WrongAnswerRecord, int64, error) {
	var recs []model.WrongAnswerRecord
	var total int64

	query := r.DB.Model(&model.WrongAnswerRecord{}).Where("student_id = ?", studentID)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Reviewed != nil {
		query = query.Where("reviewed = ?", *f.Reviewed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&recs).Error
	return recs, total, err
}

func (r *WrongAnswerRepository) CountByStudent(studentID uint, reviewed *bool) (int64, error) {
	var n int64
	query := r.DB.Model(&model.WrongAnswerRecord{}).Where("student_id = ?", studentID)
	if reviewed != nil {
		query = query.Where("reviewed = ?", *reviewed)
	}
	err := query.Count(&n).Error
	return n, err
}

func (r *WrongAnswerRepository) Update(rec *model.WrongAnswerRecord) error {
	return r.DB.Save(rec).Error
}
