package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/handler"
	"github.com/kamesh6592-cell/zola/internal/middleware"
	"github.com/kamesh6592-cell/zola/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(svc))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Message 消息发送准入
		v1.POST("/messages", h.Message.Send)
		v1.GET("/rate-limits", h.Message.RateLimits)

		// Chat 会话
		chats := v1.Group("/chats")
		{
			chats.POST("", h.Chat.CreateChat)
			chats.GET("", h.Chat.ListChats)
			chats.GET("/:id", h.Chat.GetChat)
			chats.DELETE("/:id", h.Chat.DeleteChat)
			chats.GET("/:id/messages", h.Chat.GetMessages)
		}

		// User 账号行
		users := v1.Group("/users")
		{
			users.POST("/profile", middleware.RequireAuth(svc), h.User.CreateProfile)
			users.GET("/profile", middleware.RequireAuth(svc), h.User.GetProfile)
		}

		// Model 模型目录
		v1.GET("/models", h.Model.ListModels)
	}

	return r
}
