package controller

import (
	"errors"

	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	Service *service.RankingService
}

func NewRankingController(svc *service.RankingService) *RankingController {
	return &RankingController{Service: svc}
}

// @Summary Class or grade leaderboard
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "class (default) or grade"
// @Success 200 {object} util.Response
// @Router /student/ranking [get]
func (c *RankingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scope := ctx.DefaultQuery("type", "class")
	if scope != "class" && scope != "grade" {
		util.BadRequest(ctx, "type must be class or grade")
		return
	}

	board, err := c.Service.GetRankingCached(ctx.Request.Context(), claims.UserID, scope)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, board)
}
