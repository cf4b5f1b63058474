package app

import (
	"little_learners_backend/docs"
	"little_learners_backend/internal/config"
	"little_learners_backend/internal/middleware"
	"little_learners_backend/internal/model"
	"little_learners_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// Public routes
	router.POST("/api/register", c.auth.Register)
	router.POST("/api/login", c.auth.Login)

	// Authenticated routes
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		api.GET("/profile", c.auth.GetProfile)
		api.GET("/dashboard", c.dashboard.GetDashboard)

		students := api.Group("/students")
		{
			students.POST("", c.student.CreateStudent)
			students.GET("", c.student.ListStudents)
			students.GET("/:id", c.student.GetStudent)
			students.PUT("/:id", c.student.UpdateStudent)
			students.DELETE("/:id", c.student.DeleteStudent)
			students.POST("/:id/avatar", c.student.UploadAvatar)
			students.POST("/:id/select", c.student.SelectStudent)
			students.POST("/:id/reconcile", c.dashboard.Reconcile)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", c.course.ListCourses)
			courses.GET("/:id", c.course.GetCourse)
		}

		lessons := api.Group("/lessons")
		{
			lessons.GET("/:id", c.lesson.GetLesson)
			lessons.GET("/:id/progress", c.lesson.GetProgress)
			lessons.POST("/:id/complete-section", c.lesson.CompleteSection)
			lessons.POST("/:id/video", middleware.RoleMiddleware(model.Admin), c.lesson.UploadVideo)
		}

		api.POST("/speech/speak", c.speech.Speak)
		api.GET("/narration/ws", c.narration.Connect)
	}
}
