package app

import (
	"reading_edu_backend/internal/config"
	"reading_edu_backend/internal/middleware"
	"reading_edu_backend/internal/model"
	"reading_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.auth.GetProfile)
	}

	student := auth.Group("/student")
	student.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		student.GET("/passages", c.passage.List)
		student.GET("/passages/:id", c.passage.Get)
		student.POST("/passages/:id/submit", c.passage.Submit)

		student.POST("/grammar/questions/:id", c.question.SubmitAnswer)

		student.GET("/exams", c.exam.ListForStudent)
		student.GET("/exams/:id", c.exam.GetForStudent)
		student.POST("/exams/:id/submit", c.exam.Submit)

		student.GET("/results", c.result.ListMine)

		student.GET("/wrong-answers", c.wrongAnswer.ListMine)
		student.PATCH("/wrong-answers/:id", c.wrongAnswer.Review)

		student.GET("/ranking", c.ranking.Get)
	}

	teacher := auth.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.RoleTeacher))
	{
		teacher.POST("/passages", c.passage.Create)
		teacher.GET("/passages", c.passage.List)
		teacher.GET("/passages/:id", c.passage.Get)
		teacher.PUT("/passages/:id", c.passage.Update)
		teacher.DELETE("/passages/:id", c.passage.Delete)
		teacher.POST("/passages/:id/image", c.passage.UploadImage)

		teacher.POST("/questions", c.question.Create)
		teacher.GET("/questions", c.question.List)
		teacher.GET("/questions/:id", c.question.Get)
		teacher.PUT("/questions/:id", c.question.Update)
		teacher.DELETE("/questions/:id", c.question.Delete)

		teacher.POST("/exams", c.exam.Create)
		teacher.GET("/exams", c.exam.List)
		teacher.GET("/exams/:id", c.exam.Get)
		teacher.PUT("/exams/:id", c.exam.Update)
		teacher.DELETE("/exams/:id", c.exam.Delete)
		teacher.GET("/exams/:id/status", c.exam.Status)

		teacher.GET("/results", c.result.List)
		teacher.PATCH("/results/:id/update-grading", c.result.UpdateGrading)
		teacher.GET("/results/export", c.result.ExportResults)

		teacher.GET("/statistics", c.statistics.GetStatistics)
		teacher.GET("/stats", c.statistics.GetSummary)

		teacher.POST("/students", c.student.Create)
		teacher.GET("/students", c.student.List)
		teacher.GET("/students/:id", c.student.Get)
		teacher.PUT("/students/:id", c.student.Update)
		teacher.DELETE("/students/:id", c.student.Delete)
	}
}
