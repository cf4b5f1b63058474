package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"little_learners_backend/internal/config"
	"little_learners_backend/internal/controller"
	"little_learners_backend/internal/narration"
	"little_learners_backend/internal/repository"
	"little_learners_backend/internal/service"
	"little_learners_backend/internal/session"
	"little_learners_backend/pkg/database"
	"little_learners_backend/pkg/logger"
	"little_learners_backend/pkg/monitoring"
	"little_learners_backend/pkg/security"
	"little_learners_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	student  *repository.StudentRepository
	course   *repository.CourseRepository
	lesson   *repository.LessonRepository
	section  *repository.SectionRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	student   *service.StudentService
	catalog   *service.CatalogService
	lesson    *service.LessonService
	progress  *service.ProgressService
	dashboard *service.DashboardService
	speech    *service.SpeechService
	speaker   *narration.Speaker
}

type controllers struct {
	auth      *controller.AuthController
	student   *controller.StudentController
	course    *controller.CourseController
	lesson    *controller.LessonController
	dashboard *controller.DashboardController
	speech    *controller.SpeechController
	narration *controller.NarrationController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded config and notifies subscribers. Only
// settings read per-request (rate limits are not) pick up the new values.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		student:  repository.NewStudentRepository(db),
		course:   repository.NewCourseRepository(db),
		lesson:   repository.NewLessonRepository(db),
		section:  repository.NewSectionRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.student = service.NewStudentService(repos.student, session.NewRedisStore(rdb))
	s.catalog = service.NewCatalogService(repos.course, repos.lesson)
	s.lesson = service.NewLessonService(repos.lesson, repos.section, s.storage)
	s.progress = service.NewProgressService(repos.progress, repos.student, repos.lesson, s.catalog)
	s.dashboard = service.NewDashboardService(s.student, s.catalog, s.progress, repos.course)
	s.speech = service.NewSpeechService(cfg.Speech, rdb)
	s.speaker = narration.NewSpeaker(s.speech)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		student:   controller.NewStudentController(s.student, s.storage),
		course:    controller.NewCourseController(s.catalog, s.dashboard),
		lesson:    controller.NewLessonController(s.lesson, s.progress, s.student),
		dashboard: controller.NewDashboardController(s.dashboard, s.progress, s.student),
		speech:    controller.NewSpeechController(s.speaker),
		narration: controller.NewNarrationController(s.speech, s.speaker),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

// startBackgroundTasks runs a periodic reconcile sweep so stored category
// percentages converge even for families that never reload the dashboard.
func (a *App) startBackgroundTasks(s *services, db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			var studentIDs []string
			if err := db.Table("students").Where("deleted_at IS NULL").Pluck("id", &studentIDs).Error; err != nil {
				logger.Log.Error("reconcile sweep query failed", zap.Error(err))
				continue
			}
			for _, id := range studentIDs {
				if err := s.progress.ReconcileCourseCompletion(id); err != nil {
					logger.Log.Warn("reconcile sweep failed for student",
						zap.String("studentId", id), zap.Error(err))
				}
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("little-learners", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, db)

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
