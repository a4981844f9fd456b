package controller

import (
	"errors"
	"strconv"

	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(svc *service.StudentService) *StudentController {
	return &StudentController{Service: svc}
}

// @Summary Add a student to the roster
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StudentRequest true "student"
// @Success 201 {object} util.Response
// @Router /teacher/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.SchoolLevel != "" && !req.SchoolLevel.Valid() {
		util.BadRequest(ctx, "invalid school level")
		return
	}

	dto, err := c.Service.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, dto)
}

// @Summary Roster list
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param grade query int false "grade"
// @Param class query int false "class"
// @Param search query string false "name search"
// @Success 200 {object} util.Response
// @Router /teacher/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	var f repository.StudentFilter
	if g := ctx.Query("grade"); g != "" {
		if grade, err := strconv.Atoi(g); err == nil {
			f.Grade = &grade
		}
	}
	if cl := ctx.Query("class"); cl != "" {
		if class, err := strconv.Atoi(cl); err == nil {
			f.Class = &class
		}
	}
	f.Search = ctx.Query("search")

	dtos, total, err := c.Service.List(f, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: dtos, Total: total, Page: page, Limit: limit})
}

// @Summary Student detail
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /teacher/students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	dto, err := c.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dto)
}

// @Summary Update a student
// @Tags teacher
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /teacher/students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.StudentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dto, err := c.Service.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dto)
}

// @Summary Remove a student
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /teacher/students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
