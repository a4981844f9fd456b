package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reading_edu_backend/internal/config"
	"reading_edu_backend/internal/controller"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/service"
	"reading_edu_backend/pkg/database"
	"reading_edu_backend/pkg/logger"
	"reading_edu_backend/pkg/monitoring"
	"reading_edu_backend/pkg/security"
	"reading_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	passage    *repository.PassageRepository
	question   *repository.QuestionRepository
	exam       *repository.ExamRepository
	result     *repository.ResultRepository
	wrong      *repository.WrongAnswerRepository
	statistics *repository.StatisticsRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	passage     *service.PassageService
	question    *service.QuestionService
	exam        *service.ExamService
	result      *service.ResultService
	wrongAnswer *service.WrongAnswerService
	ranking     *service.RankingService
	statistics  *service.StatisticsService
	export      *service.ExportService
	student     *service.StudentService
}

type controllers struct {
	auth        *controller.AuthController
	passage     *controller.PassageController
	question    *controller.QuestionController
	exam        *controller.ExamController
	result      *controller.ResultController
	wrongAnswer *controller.WrongAnswerController
	ranking     *controller.RankingController
	statistics  *controller.StatisticsController
	student     *controller.StudentController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		passage:    repository.NewPassageRepository(db),
		question:   repository.NewQuestionRepository(db),
		exam:       repository.NewExamRepository(db),
		result:     repository.NewResultRepository(db),
		wrong:      repository.NewWrongAnswerRepository(db),
		statistics: repository.NewStatisticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.student, cfg)
	s.passage = service.NewPassageService(repos.passage, repos.result, db)
	s.question = service.NewQuestionService(repos.question, repos.wrong)
	s.exam = service.NewExamService(repos.exam, repos.result, repos.student, db)
	s.result = service.NewResultService(repos.result, repos.wrong, db)
	s.wrongAnswer = service.NewWrongAnswerService(repos.wrong)
	s.ranking = service.NewRankingService(repos.student, repos.result, rdb)
	s.statistics = service.NewStatisticsService(repos.statistics, rdb)
	s.export = service.NewExportService(repos.result)
	s.student = service.NewStudentService(repos.student, repos.user)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		passage:     controller.NewPassageController(s.passage, s.storage, repos.student),
		question:    controller.NewQuestionController(s.question, repos.student),
		exam:        controller.NewExamController(s.exam, repos.student),
		result:      controller.NewResultController(s.result, s.export, repos.student),
		wrongAnswer: controller.NewWrongAnswerController(s.wrongAnswer, repos.student),
		ranking:     controller.NewRankingController(s.ranking),
		statistics:  controller.NewStatisticsController(s.statistics),
		student:     controller.NewStudentController(s.student),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	// redis is optional; rankings and dashboards just skip caching
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	ctrls := app.initControllers(svcs, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("reading-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
