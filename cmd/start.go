package cmd

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/spf13/cobra"
	"github.com/votann/ask-search-be/config"
	"github.com/votann/ask-search-be/database"
	"github.com/votann/ask-search-be/handler"
	"github.com/votann/ask-search-be/middleware"
	"github.com/votann/ask-search-be/repository"
	"github.com/votann/ask-search-be/service"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ask server",
	Long:  `Starts the HTTP server that answers authenticated prompts`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := weaviateDb.EnsureCollection(ctx, cfg.QueryCollection); err != nil {
			log.Fatalf("Failed to ensure query collection: %v", err)
		}

		aiService := newAIService(ctx, cfg)
		embeddingService := service.NewEmbeddingService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)

		mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		userRepo := repository.NewUserRepo(mongoDb.Collection("users"))
		logRepo := repository.NewQueryLogRepo(mongoDb.Collection("query_logs"))

		userService := service.NewUserService(userRepo)
		queryService := service.NewQueryService(
			aiService,
			embeddingService,
			weaviateDb,
			logRepo,
			userRepo,
			cfg.QueryCollection,
		)
		wsService := service.NewWebSocketService(aiService, queryService)

		corsHandler := handler.NewCorsHandler()
		authHandler := handler.NewAuthHandler(userService)
		askHandler := handler.NewAskHandler(queryService)
		dashboardHandler := handler.NewDashboardHandler(queryService)
		wsHandler := handler.NewWebSocketHandler(wsService)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/register", authHandler.HandleRegister)
		apiV1.POST("/login", authHandler.HandleLogin)

		userRoutes := apiV1.Group("/")
		userRoutes.Use(middleware.AuthMiddleware)
		{
			userRoutes.POST("/ask", askHandler.HandleAsk)
			userRoutes.GET("/dashboard", dashboardHandler.HandleDashboard)
			userRoutes.GET("/ws", wsHandler.HandleAsk)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newAIService(ctx context.Context, cfg *config.Config) service.AIService {
	if cfg.AIProvider == "gemini" {
		geminiService, err := service.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			log.Fatalf("Failed to create Gemini service: %v", err)
		}
		return geminiService
	}

	openaiService := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
	if cfg.SearchConfig.EngineID != "" {
		registerWebSearch(openaiService, service.NewSearchService(cfg.SearchConfig.APIKey, cfg.SearchConfig.EngineID))
	} else {
		log.Println("No search engine configured, web_search tool disabled")
	}
	return openaiService
}

func registerWebSearch(ai *service.OpenAIService, search *service.SearchService) {
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "The search query",
			},
		},
		Required: []string{"query"},
	}
	ai.RegisterFunctionCall(
		"web_search",
		"Search the web for current information. Returns a JSON array of results with title, link and snippet.",
		params,
		func(ctx context.Context, args []byte) (string, error) {
			var payload struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal(args, &payload); err != nil {
				return "", err
			}
			return search.SearchJSON(ctx, payload.Query)
		},
	)
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
