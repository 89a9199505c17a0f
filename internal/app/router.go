package app

import (
	"wellness_backend/docs"
	"wellness_backend/internal/middleware"
	"wellness_backend/internal/model"
	"wellness_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由(无需登录)
	router.GET("/api/affirmation", c.affirmation.Current)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config.Auth, a.services.user))
	{
		a.registerCheckInRoutes(authGroup, c)
		a.registerJournalRoutes(authGroup, c)
		a.registerChatRoutes(authGroup, c)
		a.registerCommunityRoutes(authGroup, c)
		a.registerBreathingRoutes(authGroup, c)
		a.registerUserRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerCheckInRoutes(group *gin.RouterGroup, c *controllers) {
	checkins := group.Group("/checkins")
	{
		checkins.GET("/questions", c.checkin.Questions)
		checkins.POST("", c.checkin.Submit)
		checkins.GET("", c.checkin.History)
		checkins.GET("/trend", c.checkin.Trend)
		checkins.GET("/heatmap", c.checkin.Heatmap)
		checkins.GET("/today", c.checkin.Today)
	}
}

func (a *App) registerJournalRoutes(group *gin.RouterGroup, c *controllers) {
	journal := group.Group("/journal")
	{
		journal.POST("", c.journal.Create)
		journal.GET("", c.journal.List)
		journal.GET("/:id", c.journal.Get)
		journal.PUT("/:id", c.journal.Update)
		journal.DELETE("/:id", c.journal.Delete)
		journal.POST("/:id/reflect", c.journal.Reflect)
	}
}

func (a *App) registerChatRoutes(group *gin.RouterGroup, c *controllers) {
	chat := group.Group("/chat")
	{
		chat.POST("/messages", c.chat.Send)
		chat.GET("/messages", c.chat.History)
		chat.DELETE("/messages", c.chat.Clear)
	}
}

func (a *App) registerCommunityRoutes(group *gin.RouterGroup, c *controllers) {
	groups := group.Group("/groups")
	{
		groups.GET("", c.community.ListGroups)
		groups.POST("", c.community.CreateGroup)
		groups.POST("/:id/join", c.community.Join)
		groups.DELETE("/:id/leave", c.community.Leave)
		groups.GET("/:id/posts", c.community.ListPosts)
		groups.POST("/:id/posts", c.community.CreatePost)
		groups.GET("/posts/:postId", c.community.GetPost)
		groups.DELETE("/posts/:postId", c.community.DeletePost)
	}
}

func (a *App) registerBreathingRoutes(group *gin.RouterGroup, c *controllers) {
	breathing := group.Group("/breathing")
	{
		breathing.GET("/exercises", c.breathing.Exercises)
		breathing.POST("/sessions", c.breathing.Record)
		breathing.GET("/stats", c.breathing.Stats)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.user.Profile)
	group.POST("/user/avatar", c.user.UploadAvatar)
	group.GET("/leaderboard", c.user.Leaderboard)
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/affirmations", c.affirmation.List)
		admin.POST("/affirmations", c.affirmation.Create)
		admin.PUT("/affirmations/:id", c.affirmation.Update)
		admin.DELETE("/affirmations/:id", c.affirmation.Delete)
		admin.POST("/affirmations/:id/switch", c.affirmation.Switch)
	}
}
