package repository

import (
	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

type QuestionFilter struct {
	PassageID *uint
	// Standalone selects only questions without an owning passage
	// (grammar/concept questions).
	Standalone bool
	Type       model.QuestionType
}

func (r *QuestionRepository) List(f QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64

	query := r.DB.Model(&model.Question{})
	if f.PassageID != nil {
		query = query.Where("passage_id = ?", *f.PassageID)
	} else if f.Standalone {
		query = query.Where("passage_id IS NULL")
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("`order` asc, created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) ListByPassage(passageID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("passage_id = ?", passageID).
		Order("`order` asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
