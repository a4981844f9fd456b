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

type QuestionController struct {
	Service     *service.QuestionService
	StudentRepo *repository.StudentRepository
}

func NewQuestionController(svc *service.QuestionService, studentRepo *repository.StudentRepository) *QuestionController {
	return &QuestionController{Service: svc, StudentRepo: studentRepo}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// @Summary Submit and grade one answer to a standalone question
// @Tags student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body answerRequest true "submitted answer"
// @Success 200 {object} util.Response
// @Router /student/grammar/questions/{id} [post]
func (c *QuestionController) SubmitAnswer(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.SubmitAnswer(student.ID, uint(id), req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// @Summary Create a question
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /teacher/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Type.Valid() {
		util.BadRequest(ctx, "invalid question type")
		return
	}
	if req.Type == model.QuestionChoice && len(req.Options) < 2 {
		util.BadRequest(ctx, "choice questions need at least two options")
		return
	}

	claims := util.GetUserFromContext(ctx)
	q, err := c.Service.Create(req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary List questions
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param passageId query int false "owning passage"
// @Param standalone query bool false "only standalone questions"
// @Success 200 {object} util.Response
// @Router /teacher/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	f := repository.QuestionFilter{
		Type: model.QuestionType(ctx.Query("type")),
	}
	if p := ctx.Query("passageId"); p != "" {
		if id, err := strconv.Atoi(p); err == nil {
			pid := uint(id)
			f.PassageID = &pid
		}
	}
	if ctx.Query("standalone") == "true" {
		f.Standalone = true
	}

	qs, total, err := c.Service.List(f, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: qs, Total: total, Page: page, Limit: limit})
}

// @Summary Question detail
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	q, err := c.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a question
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Type.Valid() {
		util.BadRequest(ctx, "invalid question type")
		return
	}

	q, err := c.Service.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
