package service

import (
	"errors"

	"reading_edu_backend/internal/config"
	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		Cfg:         cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	// teacher accounts may be registered directly; student accounts
	// carry the school-identity profile
	Role        model.UserRole    `json:"role"`
	SchoolLevel model.SchoolLevel `json:"schoolLevel"`
	Grade       int               `json:"grade"`
	Class       int               `json:"class"`
	Number      int               `json:"number"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}

	if role == model.RoleStudent {
		level := req.SchoolLevel
		if level == "" {
			level = model.SchoolHigh
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
		return user, nil
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	s.UserRepo.UpdateLastLogin(user.ID)
	return token, user, nil
}

func (s *AuthService) GetUser(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}
