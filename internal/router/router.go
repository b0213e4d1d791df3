package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/aura-assistant/backend/config"
	"github.com/aura-assistant/backend/internal/handler"
	"github.com/aura-assistant/backend/internal/middleware"
	"github.com/aura-assistant/backend/internal/service"
)

func Setup(
	cfg *config.Config,
	authService service.AuthService,
	chatHandler *handler.ChatHandler,
	knowledgeHandler *handler.KnowledgeHandler,
	promptHandler *handler.PromptHandler,
	authHandler *handler.AuthHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/chat", chatHandler.SubmitTurn)

		chats := api.Group("/chats")
		{
			chats.GET("", chatHandler.ListChats)
			chats.POST("", chatHandler.CreateChat)
			chats.GET("/:id", chatHandler.GetMessages)
			chats.PUT("/:id", chatHandler.RenameChat)
			chats.DELETE("/:id", chatHandler.DeleteChat)
		}

		// Anyone may submit and browse knowledge; moderation is admin-only.
		api.POST("/suggestions", knowledgeHandler.CreateSuggestion)
		api.GET("/suggestions", knowledgeHandler.ListSuggestions)
		api.POST("/instructions", knowledgeHandler.CreateInstruction)
		api.GET("/instructions", knowledgeHandler.ListInstructions)
		api.GET("/prompt", promptHandler.GetActive)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/verify", authHandler.Verify)
		}

		admin := api.Group("")
		admin.Use(middleware.AdminAuth(authService))
		{
			admin.PUT("/prompt", promptHandler.Update)
			admin.PUT("/suggestions/:id", knowledgeHandler.UpdateSuggestion)
			admin.PUT("/instructions/:id", knowledgeHandler.UpdateInstruction)
		}
	}

	return r
}
