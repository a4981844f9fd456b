package service

import (
	"fmt"
	"testing"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// Max open connections is pinned to 1 so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, name string, grade, class, number int) *model.Student {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d-%d-%d@test.local", name, grade, class, number),
		Password: "x",
		Role:     model.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)

	student := &model.Student{
		UserID:      user.ID,
		SchoolLevel: model.SchoolHigh,
		Grade:       grade,
		Class:       class,
		Number:      number,
	}
	require.NoError(t, db.Create(student).Error)

	student.User = user
	return student
}
