package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/resolvers"
	"catalog/internal/services"
	"catalog/pkg/logger"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// A missing JWT secret or incomplete database settings aborts startup;
	// the process must not serve authenticated traffic in that state.
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", false)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.AppEnv == "development")

	// --- Database ---
	// An unreachable store is fatal; the service does not start degraded.
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Msg("database connection successful")

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, product events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService, err := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpires)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}
	productService := services.NewProductService(productRepo, events, log)

	bootstrapAdmin(cfg, userRepo, authService, log)

	// --- Resolvers and Handlers ---
	resolver := resolvers.New(userRepo, productService, authService, log)
	apiHandler := handlers.NewAPIHandler(resolver, log)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	apiHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "UP",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// bootstrapAdmin seeds a single ADMIN user when the admin settings are
// present and the username is still free. Registration through the public
// API always yields role USER.
func bootstrapAdmin(cfg *config.Config, userRepo repositories.UserRepository, authService *services.AuthService, log zerolog.Logger) {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	existing, err := userRepo.GetByUsername(cfg.AdminUsername)
	if err != nil {
		log.Error().Err(err).Msg("admin bootstrap lookup failed")
		return
	}
	if existing != nil {
		return
	}

	hash, err := authService.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("admin bootstrap hashing failed")
		return
	}

	admin := &models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
		return
	}
	log.Info().Str("username", admin.Username).Msg("seeded admin user")
}
