package controller

import (
	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// resolveStudent maps the authenticated user to their student profile.
// Responds 401/403 itself and returns nil when the caller should stop.
func resolveStudent(ctx *gin.Context, repo *repository.StudentRepository) *model.Student {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}

	student, err := repo.FindByUserID(claims.UserID)
	if err != nil {
		util.Forbidden(ctx)
		return nil
	}
	return student
}
