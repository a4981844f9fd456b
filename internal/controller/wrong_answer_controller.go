package controller

import (
	"errors"
	"strconv"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WrongAnswerController struct {
	Service     *service.WrongAnswerService
	StudentRepo *repository.StudentRepository
}

func NewWrongAnswerController(svc *service.WrongAnswerService, studentRepo *repository.StudentRepository) *WrongAnswerController {
	return &WrongAnswerController{Service: svc, StudentRepo: studentRepo}
}

// @Summary Own wrong answers with review stats
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "category"
// @Param reviewed query bool false "review state"
// @Success 200 {object} util.Response
// @Router /student/wrong-answers [get]
func (c *WrongAnswerController) ListMine(ctx *gin.Context) {
	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	page, limit := pagination(ctx)
	f := repository.WrongAnswerFilter{
		Category: model.Category(ctx.Query("category")),
	}
	if r := ctx.Query("reviewed"); r != "" {
		reviewed := r == "true"
		f.Reviewed = &reviewed
	}

	out, err := c.Service.ListForStudent(student.ID, f, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, out)
}

type reviewRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// @Summary Re-attempt a wrong answer
// @Tags student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "wrong answer record id"
// @Param body body reviewRequest true "re-attempt answer"
// @Success 200 {object} util.Response
// @Router /student/wrong-answers/{id} [patch]
func (c *WrongAnswerController) Review(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.Service.Review(student.ID, uint(id), req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWrongAnswerNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, outcome)
}
