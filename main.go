package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/thefundraisingaccelerator/fundraising-copilot/handlers"
	"github.com/thefundraisingaccelerator/fundraising-copilot/repository"
	"github.com/thefundraisingaccelerator/fundraising-copilot/service"
	"github.com/thefundraisingaccelerator/fundraising-copilot/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	// Load the investor dataset once; it is read-only from here on
	dataPath := os.Getenv("INVESTOR_DATA_PATH")
	if dataPath == "" {
		dataPath = "./data/investors.json"
	}
	investorRepo, err := repository.NewInvestorRepository(dataPath)
	if err != nil {
		log.Fatal("Failed to load investor dataset:", err)
	}
	log.Printf("Loaded %d investors from %s", investorRepo.Count(), dataPath)

	sessionRepo := repository.NewSessionRepository()

	deckStorage, err := storage.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	geminiClient, err := initGemini()
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	// Initialize services
	matcherService := service.NewMatcherService(investorRepo)
	extractService := service.NewExtractService()
	chatService := service.NewChatService(
		service.ChatWithSessionRepository(sessionRepo),
		service.ChatWithMatcher(matcherService),
		service.ChatWithCompleter(service.NewGeminiCompleter(geminiClient, modelName)),
	)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionRepo, chatService)
	deckHandler := handlers.NewDeckHandler(sessionRepo, extractService, deckStorage)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Session endpoints
		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.POST("/sessions/:id/messages", sessionHandler.SendMessage)
		api.POST("/sessions/:id/starters/:key", sessionHandler.SendStarter)
		api.POST("/sessions/:id/reset", sessionHandler.ResetSession)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)

		// Deck endpoints
		api.POST("/sessions/:id/deck", deckHandler.UploadDeck)
		api.GET("/sessions/:id/deck", deckHandler.DownloadDeck)
		api.DELETE("/sessions/:id/deck", deckHandler.RemoveDeck)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initGemini() (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
