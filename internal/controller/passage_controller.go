package controller

import (
	"errors"
	"path/filepath"
	"strconv"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PassageController struct {
	Service     *service.PassageService
	Storage     *service.StorageService
	StudentRepo *repository.StudentRepository
}

func NewPassageController(svc *service.PassageService, storage *service.StorageService, studentRepo *repository.StudentRepository) *PassageController {
	return &PassageController{Service: svc, Storage: storage, StudentRepo: studentRepo}
}

func parsePassageFilter(ctx *gin.Context) repository.PassageFilter {
	f := repository.PassageFilter{
		Category:    model.Category(ctx.Query("category")),
		Difficulty:  model.Difficulty(ctx.Query("difficulty")),
		SchoolLevel: model.SchoolLevel(ctx.Query("schoolLevel")),
		Search:      ctx.Query("search"),
	}
	if g := ctx.Query("grade"); g != "" {
		if grade, err := strconv.Atoi(g); err == nil {
			f.Grade = &grade
		}
	}
	return f
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// @Summary List passages
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "category"
// @Param grade query int false "grade"
// @Success 200 {object} util.Response
// @Router /student/passages [get]
func (c *PassageController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	passages, total, err := c.Service.List(parsePassageFilter(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: passages, Total: total, Page: page, Limit: limit})
}

// @Summary Passage with its questions
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "passage id"
// @Success 200 {object} util.Response
// @Router /student/passages/{id} [get]
func (c *PassageController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	p, err := c.Service.GetWithQuestions(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrPassageNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, p)
}

type passageSubmitRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

// @Summary Submit a passage attempt
// @Tags student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "passage id"
// @Success 200 {object} util.Response
// @Router /student/passages/{id}/submit [post]
func (c *PassageController) Submit(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student := resolveStudent(ctx, c.StudentRepo)
	if student == nil {
		return
	}

	var req passageSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.Service.SubmitAttempt(student.ID, uint(id), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPassageNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, "passage has no questions")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

// @Summary Create a passage
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PassageRequest true "passage"
// @Success 201 {object} util.Response
// @Router /teacher/passages [post]
func (c *PassageController) Create(ctx *gin.Context) {
	var req service.PassageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Category.Valid() {
		util.BadRequest(ctx, "invalid category")
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.Service.Create(req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, p)
}

// @Summary Update a passage
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "passage id"
// @Success 200 {object} util.Response
// @Router /teacher/passages/{id} [put]
func (c *PassageController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.PassageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Category.Valid() {
		util.BadRequest(ctx, "invalid category")
		return
	}

	p, err := c.Service.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrPassageNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, p)
}

// @Summary Delete a passage
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "passage id"
// @Success 200 {object} util.Response
// @Router /teacher/passages/{id} [delete]
func (c *PassageController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrPassageNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Upload a passage image
// @Tags teacher
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "passage id"
// @Param file formData file true "image"
// @Success 200 {object} util.Response
// @Router /teacher/passages/{id}/image [post]
func (c *PassageController) UploadImage(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := "passages/" + uuid.New().String() + filepath.Ext(file.Filename)
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, src, file.Size,
		file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.Service.SetImageURL(uint(id), url); err != nil {
		if errors.Is(err, util.ErrPassageNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
