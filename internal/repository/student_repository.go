package repository

import (
	"reading_edu_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// CreateWithUser inserts the user and its student profile in one
// transaction so a failure cannot leave an orphaned row.
func (r *StudentRepository) CreateWithUser(user *model.User, student *model.Student) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		student.UserID = user.ID
		return tx.Create(student).Error
	})
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.Preload("User").First(&s, id).Error
	return &s, err
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&s).Error
	return &s, err
}

// StudentFilter enumerates the optional roster filters. Explicit fields
// instead of an ad-hoc condition map keep filter construction typed.
type StudentFilter struct {
	Grade  *int
	Class  *int
	Search string
}

func (r *StudentRepository) List(f StudentFilter, page, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := r.DB.Model(&model.Student{}).
		Joins("JOIN users ON users.id = students.user_id AND users.deleted_at IS NULL")
	if f.Grade != nil {
		query = query.Where("students.grade = ?", *f.Grade)
	}
	if f.Class != nil {
		query = query.Where("students.class = ?", *f.Class)
	}
	if f.Search != "" {
		query = query.Where("users.name LIKE ?", "%"+f.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("User").
		Order("students.grade asc, students.class asc, students.number asc").
		Offset(offset).Limit(limit).
		Find(&students).Error
	return students, total, err
}

// ListByScope returns all students of one grade, or of one grade+class
// when class is non-nil. Used by rankings and exam completion status.
func (r *StudentRepository) ListByScope(grade int, class *int) ([]model.Student, error) {
	var students []model.Student
	query := r.DB.Preload("User").Where("grade = ?", grade)
	if class != nil {
		query = query.Where("class = ?", *class)
	}
	err := query.Order("class asc, number asc").Find(&students).Error
	return students, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

// Delete removes the student profile and soft-deletes its user.
func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var s model.Student
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Student{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, s.UserID).Error
	})
}
