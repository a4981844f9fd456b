package repository

import (
	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PassageRepository struct {
	DB *gorm.DB
}

func NewPassageRepository(db *gorm.DB) *PassageRepository {
	return &PassageRepository{DB: db}
}

func (r *PassageRepository) Create(p *model.Passage) error {
	return r.DB.Create(p).Error
}

func (r *PassageRepository) FindByID(id uint) (*model.Passage, error) {
	var p model.Passage
	err := r.DB.First(&p, id).Error
	return &p, err
}

// FindByIDWithQuestions preloads the passage's questions in prompt order.
func (r *PassageRepository) FindByIDWithQuestions(id uint) (*model.Passage, error) {
	var p model.Passage
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.`order` asc, questions.id asc")
	}).First(&p, id).Error
	return &p, err
}

type PassageFilter struct {
	Category    model.Category
	Difficulty  model.Difficulty
	SchoolLevel model.SchoolLevel
	Grade       *int
	Search      string
}

func (r *PassageRepository) List(f PassageFilter, page, limit int) ([]model.Passage, int64, error) {
	var passages []model.Passage
	var total int64

	query := r.DB.Model(&model.Passage{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.SchoolLevel != "" {
		query = query.Where("school_level = ?", f.SchoolLevel)
	}
	if f.Grade != nil {
		query = query.Where("grade = ?", *f.Grade)
	}
	if f.Search != "" {
		query = query.Where("title LIKE ?", "%"+f.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&passages).Error
	return passages, total, err
}

func (r *PassageRepository) Update(p *model.Passage) error {
	return r.DB.Save(p).Error
}

func (r *PassageRepository) UpdateImageURL(id uint, url string) error {
	return r.DB.Model(&model.Passage{}).Where("id = ?", id).
		Update("image_url", url).Error
}

func (r *PassageRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Passage{}, id).Error
}
