package controller

import (
	"errors"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "account info"
// @Success 201 {object} util.Response
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Role != "" && req.Role != model.RoleStudent && req.Role != model.RoleTeacher {
		util.BadRequest(ctx, "invalid role")
		return
	}

	user, err := c.Service.Register(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.Service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) || errors.Is(err, util.ErrPermissionDenied) {
			util.Unauthorized(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// @Summary Current account
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Service.GetUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, user)
}
