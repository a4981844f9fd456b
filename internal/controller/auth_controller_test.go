package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reading_edu_backend/internal/config"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	svc := service.NewAuthService(repository.NewUserRepository(db), repository.NewStudentRepository(db), cfg)
	ctrl := NewAuthController(svc)

	router := gin.New()
	router.POST("/api/register", ctrl.Register)
	return router
}

func postRegister(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	router := newAuthTestRouter(t)

	w := postRegister(t, router, map[string]interface{}{
		"name":     "Kim",
		"email":    "kim@test.local",
		"password": "secret1",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterAcceptsKnownRoles(t *testing.T) {
	router := newAuthTestRouter(t)

	w := postRegister(t, router, map[string]interface{}{
		"name":     "Teacher Choi",
		"email":    "choi@test.local",
		"password": "secret1",
		"role":     "teacher",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postRegister(t, router, map[string]interface{}{
		"name":     "Kim",
		"email":    "kim@test.local",
		"password": "secret1",
		"role":     "student",
		"grade":    2,
		"class":    3,
		"number":   7,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
