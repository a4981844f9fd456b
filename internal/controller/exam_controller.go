package controller

import (
	"errors"
	"strconv"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service     *service.ExamService
	StudentRepo *repository.StudentRepository
}

func NewExamController(svc *service.ExamService, studentRepo *repository.StudentRepository) *ExamController {
	return &ExamController{Service: svc, StudentRepo: studentRepo}
}

func parseExamFilter(ctx *gin.Context) repository.ExamFilter {
	f := repository.ExamFilter{
		Category: model.Category(ctx.Query("category")),
		Type:     model.ExamType(ctx.Query("type")),
	}
	if g := ctx.Query("grade"); g != "" {
		if grade, err := strconv.Atoi(g); err == nil {
			f.Grade = &grade
		}
	}
	return f
}

// @Summary List published exams for the student's grade
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /student/exams [get]
func (c *ExamController) ListForStudent(ctx *gin.Context) {
	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	page, limit := pagination(ctx)
	f := parseExamFilter(ctx)
	f.PublishedOnly = true
	f.Grade = &student.Grade

	exams, total, err := c.Service.List(f, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

// @Summary Exam detail for taking
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /student/exams/{id} [get]
func (c *ExamController) GetForStudent(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	e, err := c.Service.GetForStudent(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) || errors.Is(err, util.ErrExamNotPublished) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	// answers stay server-side while the exam is being taken
	redacted := *e
	redacted.Items = make([]model.ExamItem, len(e.Items))
	for i, item := range e.Items {
		questions := make([]model.ExamQuestion, len(item.Questions))
		for j, q := range item.Questions {
			q.Answers = nil
			q.Explanation = ""
			q.WrongExplanations = nil
			questions[j] = q
		}
		item.Questions = questions
		redacted.Items[i] = item
	}

	util.Success(ctx, &redacted)
}

type examSubmitRequest struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	StartedAt time.Time         `json:"startedAt"`
}

// @Summary Submit an exam attempt
// @Tags student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /student/exams/{id}/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	var req examSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.Service.SubmitAttempt(student.ID, uint(id), req.Answers, req.StartedAt)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) || errors.Is(err, util.ErrExamNotPublished) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary Create an exam
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExamRequest true "exam"
// @Success 201 {object} util.Response
// @Router /teacher/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Category.Valid() {
		util.BadRequest(ctx, "invalid category")
		return
	}
	if req.Type != "" && !req.Type.Valid() {
		util.BadRequest(ctx, "invalid exam type")
		return
	}

	claims := util.GetUserFromContext(ctx)
	e, err := c.Service.Create(req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, e)
}

// @Summary List exams
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	exams, total, err := c.Service.List(parseExamFilter(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

// @Summary Exam detail
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /teacher/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	e, err := c.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, e)
}

// @Summary Update an exam
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /teacher/exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Category.Valid() {
		util.BadRequest(ctx, "invalid category")
		return
	}

	e, err := c.Service.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, e)
}

// @Summary Delete an exam
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /teacher/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Per-student completion status
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /teacher/exams/{id}/status [get]
func (c *ExamController) Status(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	entries, err := c.Service.CompletionStatus(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
