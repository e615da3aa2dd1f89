package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"fastzero/internal/config"
	"fastzero/internal/database"
	"fastzero/internal/handlers"
	"fastzero/internal/middleware"
	"fastzero/internal/repositories"
	"fastzero/internal/services"
	"fastzero/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Storage ---
	var userRepo repositories.UserRepository
	if cfg.DatabaseDriver == config.DriverMemory {
		userRepo = repositories.NewMemoryUserRepository()
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}()
		userRepo = repositories.NewGORMUserRepository(db)
	}

	// --- Events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeUserEvents(rabbitmq.LogUserEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is not set. User events will not be published.")
	}

	app := NewApp(cfg, userRepo, events)

	log.Printf("Starting server on port %s (storage: %s)", cfg.AppPort, cfg.DatabaseDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires services and handlers around userRepo and returns the Fiber app.
// events may be nil.
func NewApp(cfg *config.Config, userRepo repositories.UserRepository, events services.EventPublisher) *fiber.App {
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg.SecretKey, cfg.TokenTTL)

	authService := services.NewAuthService(userRepo, hasher, tokens)
	userService := services.NewUserService(userRepo, hasher, events)

	validate := validator.New()
	authHandler := handlers.NewAuthHandler(authService, validate)
	userHandler := handlers.NewUserHandler(userService, validate)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	handlers.RegisterRootRoutes(app, cfg.DatabaseDriver)
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, middleware.AuthRequired(authService))

	return app
}
