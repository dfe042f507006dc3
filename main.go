package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Vuhuydiet/smartrent-ai/api"
	"github.com/Vuhuydiet/smartrent-ai/config"
	"github.com/Vuhuydiet/smartrent-ai/database"
	"github.com/Vuhuydiet/smartrent-ai/llm"
	"github.com/Vuhuydiet/smartrent-ai/middleware"
	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/repository"
	"github.com/Vuhuydiet/smartrent-ai/services"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	// The model client is constructed once at startup. A missing
	// credential is not fatal: unrelated routes keep serving and the
	// chatbot health endpoint reports 503.
	var llmClient llm.Client
	geminiClient, llmErr := llm.NewGeminiClient(config.AppConfig.LLM)
	if llmErr != nil {
		log.Printf("WARN: [Main] Language-model client unavailable: %v", llmErr)
	} else {
		llmClient = geminiClient
	}

	// Initialize repositories
	convRepo := repository.NewConversationRepository(config.AppConfig.MaxConversations)
	userRepo := repository.NewUserRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize services
	builder := services.NewContextBuilder(config.AppConfig.LLM.HistoryLimit)
	chatService := services.NewChatService(llmClient, convRepo, builder)
	userService := services.NewUserService(userRepo)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(chatService, userService, llmErr)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	r.GET("/", handler.RootHandler)
	r.GET("/health", handler.HealthHandler)

	apiV1 := r.Group("/api/v1")
	{
		chatGroup := apiV1.Group("/chat")
		{
			chatGroup.POST("/chat", handler.ChatHandler)
			chatGroup.GET("/conversation/:conversationID", handler.GetConversationHandler)
			chatGroup.DELETE("/conversation/:conversationID", handler.ClearConversationHandler)
			chatGroup.GET("/conversations", handler.ListConversationsHandler)
			chatGroup.GET("/health", handler.ChatHealthHandler)
			chatGroup.GET("/token-usage", handler.TokenUsageHandler)
			chatGroup.POST("/reset-counters", handler.ResetCountersHandler)
		}

		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/", handler.CreateUserHandler)
			userGroup.GET("/:userID", handler.GetUserHandler)
			userGroup.DELETE("/:userID", handler.DeleteUserHandler)
		}
	}
}
