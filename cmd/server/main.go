package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/brandwave/api/internal/client"
	"github.com/brandwave/api/internal/config"
	"github.com/brandwave/api/internal/handler"
	"github.com/brandwave/api/internal/middleware"
	"github.com/brandwave/api/internal/service"
	"github.com/brandwave/api/internal/worker"
	ws "github.com/brandwave/api/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize provider clients
	textClient := client.NewTextClient(&cfg.OpenRouter)
	mediaClient := client.NewFalClient(&cfg.Fal)

	// Initialize services
	styleStore := service.NewStyleStore(redisClient)
	generationService := service.NewGenerationService(textClient, mediaClient, styleStore)
	jobService := service.NewCampaignJobService(redisClient, asynqClient)

	// Initialize handlers
	campaignHandler := handler.NewCampaignHandler(generationService, validate)
	jobHandler := handler.NewCampaignJobHandler(jobService, validate)
	modelsHandler := handler.NewModelsHandler()
	styleHandler := handler.NewStyleHandler(styleStore)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"openrouter": textClient.IsConfigured(),
				"fal":        mediaClient.IsConfigured(),
			},
		})
	})

	// API routes
	api := app.Group("/api", authMiddleware.Authenticate())

	// Campaign routes
	campaigns := api.Group("/campaigns")
	campaigns.Post("/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), campaignHandler.Generate)
	campaigns.Post("/jobs", rateLimiter.JobsLimit(cfg.RateLimit.JobsPerHour), jobHandler.Start)
	campaigns.Get("/jobs/:jobId", jobHandler.Status)
	campaigns.Get("/jobs/:jobId/result", jobHandler.Result)
	campaigns.Delete("/jobs/:jobId", jobHandler.Cancel)

	// Model catalog
	api.Get("/models", modelsHandler.List)

	// Style overrides
	styles := api.Group("/styles", rateLimiter.StylesLimit(cfg.RateLimit.StylesPerMin))
	styles.Get("/:platform/:styleId", styleHandler.Get)
	styles.Put("/:platform/:styleId", styleHandler.Put)
	styles.Delete("/:platform/:styleId", styleHandler.Delete)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		jobID := c.Params("jobId")
		hub.HandleConnection(c, jobID)
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, jobService, generationService, hub)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func startWorkerServer(cfg *config.Config, jobService *service.CampaignJobService, generationService *service.GenerationService, hub *ws.Hub) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"campaign": 10,
			},
		},
	)

	campaignWorker := worker.NewCampaignWorker(jobService, generationService, hub)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeCampaign, campaignWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Printf("Asynq worker error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
