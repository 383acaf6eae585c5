package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rexdotsh/praxis/internal/adapter"
	"github.com/rexdotsh/praxis/internal/adapter/llmgen"
	"github.com/rexdotsh/praxis/internal/adapter/youtube"
	"github.com/rexdotsh/praxis/internal/cache"
	"github.com/rexdotsh/praxis/internal/config"
	"github.com/rexdotsh/praxis/internal/database"
	"github.com/rexdotsh/praxis/internal/handler"
	"github.com/rexdotsh/praxis/internal/logger"
	"github.com/rexdotsh/praxis/internal/middleware"
	"github.com/rexdotsh/praxis/internal/repository"
	"github.com/rexdotsh/praxis/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXDB(cfg.Database.Path)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize LLM gateway client
	llmClient, err := llmgen.NewClient(cfg.OpenRouter)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM gateway client initialized", zap.String("base_url", cfg.OpenRouter.BaseURL))

	// Initialize YouTube scrape clients
	youtubeHTTPClient := &http.Client{Timeout: 30 * time.Second}
	transcriptClient := youtube.NewTranscriptClient(youtubeHTTPClient, cfg.YouTube.UserAgent)
	searchClient := youtube.NewSearchClient(youtubeHTTPClient, cfg.YouTube.UserAgent)

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)
	videoRepository := repository.NewVideoDatabaseAdapter(db)
	searchRepository := repository.NewSearchDatabaseAdapter(db)
	datesheetRepository := repository.NewDatesheetDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	transcriptTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Transcript, 24*time.Hour)
	suggestionTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Suggestions, 7*24*time.Hour)

	authService := service.NewAuthService(cfg.Auth)
	userService := service.NewUserService(userRepository)
	transcriptService := service.NewTranscriptService(transcriptClient, cacheAdapter, transcriptTTL)
	chapterService := service.NewChapterService(llmgen.NewChapterGenerator(llmClient))
	searchService := service.NewSearchService(
		llmgen.NewQueryRefiner(llmClient),
		searchClient,
		llmgen.NewCandidateRanker(llmClient),
		searchRepository,
		videoRepository,
	)
	suggestionService := service.NewSuggestionService(llmgen.NewSuggestionGenerator(llmClient), cacheAdapter, suggestionTTL)
	quizService := service.NewQuizService(quizRepository, videoRepository, llmgen.NewQuizGenerator(llmClient), txManager)
	chatService := service.NewChatService(llmgen.NewChatModel(llmClient))
	datesheetService := service.NewDatesheetService(llmgen.NewDatesheetParser(llmClient), datesheetRepository)

	// Initialize handlers
	transcriptHandler := handler.NewTranscriptHandler(transcriptService)
	chapterHandler := handler.NewChapterHandler(chapterService)
	searchHandler := handler.NewSearchHandler(searchService, userService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	quizHandler := handler.NewQuizHandler(quizService, userService)
	chatHandler := handler.NewChatHandler(chatService)
	datesheetHandler := handler.NewDatesheetHandler(datesheetService, userService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group, everything behind bearer auth
	apiGroup := app.Group("/api", middleware.Protected(authService))

	apiGroup.Post("/search", searchHandler.Search)
	apiGroup.Get("/videos/:id/transcript", transcriptHandler.GetTranscript)
	apiGroup.Get("/videos/:id/transcript/window", transcriptHandler.GetWindow)
	apiGroup.Post("/chapters", chapterHandler.GenerateChapters)
	apiGroup.Post("/suggestions", suggestionHandler.GetSuggestions)
	apiGroup.Post("/chat", chatHandler.Chat)

	apiGroup.Post("/quiz/generate", quizHandler.Generate)
	apiGroup.Post("/quiz/next", quizHandler.NextQuestion)
	apiGroup.Post("/quiz/answer", quizHandler.SubmitAnswer)
	apiGroup.Post("/quiz/finish", quizHandler.Finish)
	apiGroup.Get("/quiz/session", quizHandler.SessionState)

	apiGroup.Post("/datesheets/parse", datesheetHandler.Parse)
	apiGroup.Post("/datesheets", datesheetHandler.Create)
	apiGroup.Get("/datesheets", datesheetHandler.List)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
