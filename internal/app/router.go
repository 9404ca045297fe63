package app

import (
	"mockera_backend/internal/config"
	"mockera_backend/internal/middleware"
	"mockera_backend/internal/model"
	"mockera_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 登录用户路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/attempts", c.attempt.SubmitAttempt)
		authGroup.GET("/attempts", c.attempt.ListAttempts)
		authGroup.GET("/leaderboard", c.leaderboard.GetLeaderboard)
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.POST("/rank-shield", c.user.PurchaseRankShield)
		authGroup.GET("/tests", c.test.ListTests)
		authGroup.GET("/tests/:id", c.test.GetTest)
		authGroup.GET("/percentile-bands", c.analytics.GetPercentileBands)
	}

	// 教师路由
	teacherGroup := router.Group("/api/teacher")
	teacherGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		teacherGroup.POST("/tests", c.test.CreateTest)
		teacherGroup.POST("/questions/:id/image", c.test.UploadQuestionImage)
		teacherGroup.PUT("/tests/:id/percentile-bands", c.analytics.ReplacePercentileBands)
	}

	// 管理员路由
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/backfill", c.admin.RunBackfill)
	}
}
