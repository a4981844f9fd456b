package controller

import (
	"reading_edu_backend/internal/service"
	"reading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	Service *service.StatisticsService
}

func NewStatisticsController(svc *service.StatisticsService) *StatisticsController {
	return &StatisticsController{Service: svc}
}

// @Summary Grouped score statistics and 30-day trend
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/statistics [get]
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	stats, err := c.Service.GetStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary Platform summary counts
// @Tags teacher
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/stats [get]
func (c *StatisticsController) GetSummary(ctx *gin.Context) {
	summary, err := c.Service.GetSummary()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
