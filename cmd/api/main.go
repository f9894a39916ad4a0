package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tabibito/portfolio-api/internal/config"
	"github.com/tabibito/portfolio-api/internal/database"
	"github.com/tabibito/portfolio-api/internal/handler"
	"github.com/tabibito/portfolio-api/internal/mailer"
	"github.com/tabibito/portfolio-api/internal/middleware"
	"github.com/tabibito/portfolio-api/internal/repository"
	"github.com/tabibito/portfolio-api/internal/router"
	"github.com/tabibito/portfolio-api/internal/service"
	"github.com/tabibito/portfolio-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Storage is optional: without DATABASE_URL the repositories run in
	// no-op mode and submissions are only relayed, never persisted.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, messages will not be persisted")
	}

	var guard *redis.Client
	if cfg.RedisURL != "" {
		guard, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer guard.Close()
	}

	notifier := mailer.New(cfg.SMTP, logger)
	validate := validator.New(validator.WithRequiredStructEnabled())

	messageRepo := repository.NewMessageRepository(db, logger)
	userRepo := repository.NewUserRepository(db, cfg.OwnerOpenID, logger)

	contactService := service.NewContactService(messageRepo, notifier, guard, logger)
	adminMessageService := service.NewAdminMessageService(messageRepo, logger)

	contactHandler := handler.NewContactHandler(contactService, logger)
	adminMessageHandler := handler.NewAdminMessageHandler(adminMessageService, validate, logger)
	authHandler := handler.NewAuthHandler(userRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: errorHandler,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler:      contactHandler,
		AdminMessageHandler: adminMessageHandler,
		AuthHandler:         authHandler,
		Notifier:            notifier,
		SessionMiddleware:   middleware.VerifySession(cfg.JWTSecret),
		UserMiddleware:      middleware.LoadUser(userRepo, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// errorHandler keeps unexpected failures generic on the wire: anything that
// is not an explicit client error surfaces as a plain internal server error.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return utils.SendError(c, fiberErr.Code, fiberErr.Message)
	}
	return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
