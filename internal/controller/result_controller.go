package controller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service     *service.ResultService
	Export      *service.ExportService
	StudentRepo *repository.StudentRepository
}

func NewResultController(svc *service.ResultService, export *service.ExportService, studentRepo *repository.StudentRepository) *ResultController {
	return &ResultController{Service: svc, Export: export, StudentRepo: studentRepo}
}

// @Summary Own results with summary stats
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "category"
// @Success 200 {object} util.Response
// @Router /student/results [get]
func (c *ResultController) ListMine(ctx *gin.Context) {
	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	out, err := c.Service.ListForStudent(student.ID, model.Category(ctx.Query("category")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, out)
}

// @Summary All exam results with student identity
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param examId query int false "limit to one exam"
// @Success 200 {object} util.Response
// @Router /teacher/results [get]
func (c *ResultController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	var examID *uint
	if e := ctx.Query("examId"); e != "" {
		id, err := strconv.Atoi(e)
		if err != nil {
			util.BadRequest(ctx, "invalid examId")
			return
		}
		u := uint(id)
		examID = &u
	}

	rows, total, err := c.Service.ListAll(examID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

type updateGradingRequest struct {
	ItemIndex     *int  `json:"itemIndex" binding:"required"`
	QuestionIndex *int  `json:"questionIndex" binding:"required"`
	IsCorrect     *bool `json:"isCorrect" binding:"required"`
}

// @Summary Regrade one question of an exam attempt
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam result id"
// @Param body body updateGradingRequest true "new verdict"
// @Success 200 {object} util.Response
// @Router /teacher/results/{id}/update-grading [patch]
func (c *ResultController) UpdateGrading(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req updateGradingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.UpdateGrading(uint(id), *req.ItemIndex, *req.QuestionIndex, *req.IsCorrect)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResultNotFound),
			errors.Is(err, util.ErrExamNotFound),
			errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, res)
}

// @Summary Export exam results as a spreadsheet
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param examId query int false "limit to one exam"
// @Success 200 {file} binary
// @Router /teacher/results/export [get]
func (c *ResultController) ExportResults(ctx *gin.Context) {
	var examID *uint
	if e := ctx.Query("examId"); e != "" {
		id, err := strconv.Atoi(e)
		if err != nil {
			util.BadRequest(ctx, "invalid examId")
			return
		}
		u := uint(id)
		examID = &u
	}

	filename := fmt.Sprintf("results-%s.xlsx", time.Now().Format("20060102-150405"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := c.Export.WriteResultsXLSX(ctx.Writer, examID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
}
