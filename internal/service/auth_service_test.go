package service

import (
	"testing"
	"time"

	"reading_edu_backend/internal/config"
	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), repository.NewStudentRepository(db), cfg)
}

func TestRegisterStudentCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterRequest{
		Name:     "Kim",
		Email:    "kim@test.local",
		Password: "secret1",
		Grade:    2,
		Class:    3,
		Number:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	var student model.Student
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&student).Error)
	assert.Equal(t, 2, student.Grade)
	assert.Equal(t, 3, student.Class)
	assert.Equal(t, 7, student.Number)
	assert.Equal(t, model.SchoolHigh, student.SchoolLevel)
}

func TestRegisterTeacherSkipsProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterRequest{
		Name:     "Teacher Choi",
		Email:    "choi@test.local",
		Password: "secret1",
		Role:     model.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, user.Role)

	var n int64
	require.NoError(t, db.Model(&model.Student{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	req := RegisterRequest{Name: "Kim", Email: "kim@test.local", Password: "secret1"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterRequest{Name: "Kim", Email: "kim@test.local", Password: "secret1"})
	require.NoError(t, err)

	token, user, err := svc.Login("kim@test.local", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Kim", user.Name)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)

	_, _, err = svc.Login("kim@test.local", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@test.local", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
