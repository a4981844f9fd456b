package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
