package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/brandwave/api/internal/client"
	"github.com/brandwave/api/internal/config"
	"github.com/brandwave/api/internal/handler"
	"github.com/brandwave/api/internal/middleware"
	"github.com/brandwave/api/internal/service"
)

const testJWTSecret = "test-secret-for-e2e"

// testApp holds all components needed for testing
type testApp struct {
	app *fiber.App
}

// setupApp creates a Fiber app identical to main.go but with unconfigured
// external clients, so text falls back to mocks, images to placeholders, and
// video is skipped. Redis on localhost must be running.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // use DB 15 for tests to avoid collision
	})

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr: "localhost:6379",
		DB:   15,
	})
	t.Cleanup(func() { asynqClient.Close() })

	validate := validator.New()

	// External clients carry no API keys, forcing mock/placeholder paths
	textClient := client.NewTextClient(&config.OpenRouterConfig{})
	mediaClient := client.NewFalClient(&config.FalConfig{})

	// Services
	styleStore := service.NewStyleStore(redisClient)
	generationService := service.NewGenerationService(textClient, mediaClient, styleStore)
	jobService := service.NewCampaignJobService(redisClient, asynqClient)

	// Handlers
	campaignHandler := handler.NewCampaignHandler(generationService, validate)
	jobHandler := handler.NewCampaignJobHandler(jobService, validate)
	modelsHandler := handler.NewModelsHandler()
	styleHandler := handler.NewStyleHandler(styleStore)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"openrouter": textClient.IsConfigured(),
				"fal":        mediaClient.IsConfigured(),
			},
		})
	})

	// API routes (authenticated). Very high rate limits so tests never block.
	api := app.Group("/api", authMiddleware.Authenticate())

	campaigns := api.Group("/campaigns")
	campaigns.Post("/generate", rateLimiter.GenerateLimit(10000), campaignHandler.Generate)
	campaigns.Post("/jobs", rateLimiter.JobsLimit(10000), jobHandler.Start)
	campaigns.Get("/jobs/:jobId", jobHandler.Status)
	campaigns.Get("/jobs/:jobId/result", jobHandler.Result)
	campaigns.Delete("/jobs/:jobId", jobHandler.Cancel)

	api.Get("/models", modelsHandler.List)

	styles := api.Group("/styles", rateLimiter.StylesLimit(10000))
	styles.Get("/:platform/:styleId", styleHandler.Get)
	styles.Put("/:platform/:styleId", styleHandler.Put)
	styles.Delete("/:platform/:styleId", styleHandler.Delete)

	return &testApp{app: app}
}

// generateToken creates an HMAC JWT token for test requests.
func generateToken(t *testing.T) string {
	t.Helper()
	claims := middleware.UserClaims{
		UserID: "test-user-123",
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "brandwave-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, error) {
	t.Helper()
	token := generateToken(t)
	return doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
