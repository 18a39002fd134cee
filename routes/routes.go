package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/config"
	"github.com/vnkhanh/survey-manager/controllers"
	"github.com/vnkhanh/survey-manager/middleware"
	"github.com/vnkhanh/survey-manager/services"
)

// NewRouter tạo engine gin với middleware chung và toàn bộ route.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	SetupRoutes(r, db, cfg)
	return r
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	controllers.RegisterValidators()

	h := &controllers.Handler{
		DB:                       db,
		Catalog:                  services.NewCatalogService(db, cfg.Location),
		Responses:                services.NewResponseService(db),
		Results:                  services.NewResultsService(db),
		Auth:                     services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL),
		AllowIncompleteResponses: cfg.AllowIncompleteResponses,
	}

	// Giới hạn theo client; mỗi nhóm route một limiter riêng
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMin, cfg.SubmitBurst, 5*time.Minute)
	loginLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMin, cfg.SubmitBurst, 5*time.Minute)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
			auth.PUT("/password", middleware.AuthJWT(cfg.JWTSecret), h.ChangePassword)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthJWT(cfg.JWTSecret))

		surveys := protected.Group("/surveys")
		{
			surveys.GET("", h.GetUserSurveys)
			surveys.GET("/all", h.GetAllSurveys)
			surveys.GET("/unanswered", h.GetUserUnansweredSurveys)
			surveys.POST("", h.CreateSurvey)
			surveys.GET("/:id", h.GetSurvey)
			surveys.PATCH("/:id", h.UpdateSurvey)
			surveys.DELETE("/:id", h.DeleteSurvey)

			surveys.POST("/:id/questions", h.AddQuestion)
			surveys.DELETE("/:id/questions/:questionId", h.DeleteQuestion)
			surveys.POST("/:id/questions/:questionId/alternatives", h.AddAlternative)
			surveys.DELETE("/:id/questions/:questionId/alternatives/:alternativeId", h.DeleteAlternative)

			surveys.POST("/:id/responses", middleware.RateLimit(submitLimiter), h.SubmitResponse)

			surveys.GET("/:id/results", h.GetSurveyResults)
			surveys.GET("/:id/results/export", h.ExportSurveyResults)
		}

		protected.GET("/responses", h.GetUserSurveyResponses)
	}
}
