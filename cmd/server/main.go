package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/citysafety/backend/internal/delivery/http"
	"github.com/citysafety/backend/internal/observability"
	"github.com/citysafety/backend/internal/repository/csvfile"
	"github.com/citysafety/backend/internal/repository/postgres"
	"github.com/citysafety/backend/internal/repository/sqlite"
	"github.com/citysafety/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Pick the record source. A load failure below is fatal: the
	// dashboard never starts on a partial or synthetic dataset.
	source, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure record source: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Engine: load, derive and cache the dataset exactly once
	metrics := observability.NewMetrics()
	engine, err := service.NewEngine(ctx, source, metrics)
	if err != nil {
		log.Fatalf("Data unavailable: %v", err)
	}

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Accidents Dashboard API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes: sources with a live backend surface it on /health
	var health http.HealthChecker
	if checker, ok := source.(http.HealthChecker); ok {
		health = checker
	}
	http.SetupRoutes(app, engine, health)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DataSource  string
	DataPath    string
	DatabaseURL string
	Port        string
	Env         string
}

func loadConfig() *Config {
	return &Config{
		DataSource:  getEnv("DATA_SOURCE", "auto"),
		DataPath:    getEnv("DATA_PATH", "data/road_accidents.csv"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),
	}
}

// buildSource selects the ingestion collaborator: mock for demo mode,
// Postgres when a database URL is configured, SQLite for .db/.sqlite
// dataset files, CSV otherwise.
func buildSource(ctx context.Context, cfg *Config) (service.RecordSource, func(), error) {
	if cfg.DataSource == "mock" {
		log.Println("Using mock record source (demo mode)")
		return postgres.NewMockSource(500), nil, nil
	}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Loading records from PostgreSQL")
		return postgres.NewPostgresSource(pool), pool.Close, nil
	}

	if strings.HasSuffix(cfg.DataPath, ".db") || strings.HasSuffix(cfg.DataPath, ".sqlite") {
		log.Printf("Loading records from SQLite file %s", cfg.DataPath)
		return sqlite.NewSource(cfg.DataPath), nil, nil
	}

	log.Printf("Loading records from CSV file %s", cfg.DataPath)
	return csvfile.NewSource(cfg.DataPath), nil, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
