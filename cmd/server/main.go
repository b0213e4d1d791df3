package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/config"
	"github.com/aura-assistant/backend/internal/eventbus"
	"github.com/aura-assistant/backend/internal/handler"
	"github.com/aura-assistant/backend/internal/pkg/database"
	"github.com/aura-assistant/backend/internal/pkg/llm"
	"github.com/aura-assistant/backend/internal/repository"
	"github.com/aura-assistant/backend/internal/router"
	"github.com/aura-assistant/backend/internal/service"
	"github.com/aura-assistant/backend/internal/subscriber"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("server starting...")

	cfg := config.GetConfig()

	if cfg.Database.Type != "mysql" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	promptRepo := repository.NewPromptRepository(db)
	instructionRepo := repository.NewInstructionRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	knowledgeBus := eventbus.NewKnowledgeEventBus()
	subscriber.NewKnowledgeEventSubscriber().Register(knowledgeBus)

	chatModel, err := llm.NewChatModel(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize chat model: %v", err)
	}

	knowledgeService := service.NewKnowledgeService(promptRepo, instructionRepo, suggestionRepo, knowledgeBus)
	composer := service.NewPromptComposer(promptRepo, instructionRepo, suggestionRepo)
	chatService := service.NewChatService(chatRepo, messageRepo)
	turnService := service.NewTurnService(chatService, composer, chatModel, cfg.LLM.Timeout)
	authService := service.NewAuthService(cfg)

	chatHandler := handler.NewChatHandler(chatService, turnService)
	knowledgeHandler := handler.NewKnowledgeHandler(knowledgeService)
	promptHandler := handler.NewPromptHandler(knowledgeService)
	authHandler := handler.NewAuthHandler(authService)

	r := router.Setup(cfg, authService, chatHandler, knowledgeHandler, promptHandler, authHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
