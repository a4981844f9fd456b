package service

import (
	"errors"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/jinzhu/copier"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
	UserRepo    *repository.UserRepository
}

func NewStudentService(studentRepo *repository.StudentRepository, userRepo *repository.UserRepository) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		UserRepo:    userRepo,
	}
}

type StudentRequest struct {
	Name        string            `json:"name" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
	Password    string            `json:"password" binding:"required,min=6"`
	SchoolLevel model.SchoolLevel `json:"schoolLevel"`
	Grade       int               `json:"grade" binding:"required"`
	Class       int               `json:"class" binding:"required"`
	Number      int               `json:"number" binding:"required"`
}

// StudentDTO is the roster view of a student; auth fields stay out.
type StudentDTO struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	SchoolLevel model.SchoolLevel `json:"schoolLevel"`
	Grade       int               `json:"grade"`
	Class       int               `json:"class"`
	Number      int               `json:"number"`
}

func toStudentDTO(s *model.Student) StudentDTO {
	var dto StudentDTO
	copier.Copy(&dto, s)
	if s.User != nil {
		dto.Name = s.User.Name
		dto.Email = s.User.Email
	}
	return dto
}

// Create registers a student account: user row and student profile in
// one transaction via the repository.
func (s *StudentService) Create(req StudentRequest) (*StudentDTO, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	level := req.SchoolLevel
	if level == "" {
		level = model.SchoolHigh
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleStudent,
	}
	student := &model.Student{
		SchoolLevel: level,
		Grade:       req.Grade,
		Class:       req.Class,
		Number:      req.Number,
	}

	if err := s.StudentRepo.CreateWithUser(user, student); err != nil {
		return nil, err
	}

	student.User = user
	dto := toStudentDTO(student)
	return &dto, nil
}

func (s *StudentService) Get(id uint) (*StudentDTO, error) {
	student, err := s.StudentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	dto := toStudentDTO(student)
	return &dto, nil
}

func (s *StudentService) List(f repository.StudentFilter, page, limit int) ([]StudentDTO, int64, error) {
	students, total, err := s.StudentRepo.List(f, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]StudentDTO, len(students))
	for i := range students {
		dtos[i] = toStudentDTO(&students[i])
	}
	return dtos, total, nil
}

type StudentUpdateRequest struct {
	Name        string            `json:"name"`
	SchoolLevel model.SchoolLevel `json:"schoolLevel"`
	Grade       int               `json:"grade"`
	Class       int               `json:"class"`
	Number      int               `json:"number"`
}

func (s *StudentService) Update(id uint, req StudentUpdateRequest) (*StudentDTO, error) {
	student, err := s.StudentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if req.SchoolLevel != "" {
		student.SchoolLevel = req.SchoolLevel
	}
	if req.Grade != 0 {
		student.Grade = req.Grade
	}
	if req.Class != 0 {
		student.Class = req.Class
	}
	if req.Number != 0 {
		student.Number = req.Number
	}
	if err := s.StudentRepo.Update(student); err != nil {
		return nil, err
	}

	if req.Name != "" && student.User != nil {
		student.User.Name = req.Name
		if err := s.UserRepo.DB.Save(student.User).Error; err != nil {
			return nil, err
		}
	}

	dto := toStudentDTO(student)
	return &dto, nil
}

func (s *StudentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.StudentRepo.Delete(id)
}
