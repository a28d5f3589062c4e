package app

import (
	"context"
	"fmt"
	"time"

	"marketsafe_backend/database"
	"marketsafe_backend/internal/config"
	"marketsafe_backend/internal/email"
	"marketsafe_backend/internal/handlers"
	"marketsafe_backend/internal/logger"
	"marketsafe_backend/internal/managers"
	"marketsafe_backend/internal/middleware"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/internal/routes"
	"marketsafe_backend/internal/services"
	"marketsafe_backend/internal/validator"
	"marketsafe_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run loads configuration, opens the connection pool and starts the HTTP
// server. The pool is built here and handed down explicitly; nothing below
// this function opens its own connections.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	tokenWorker := workers.NewTokenWorker(gormDB)
	tokenWorker.Start(context.Background())

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// OpenDatabase opens the gorm pool with the limits from configuration and
// verifies connectivity with a ping.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMn) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)

	accountRepo := repositories.NewAccountRepository()
	tokenRepo := repositories.NewVerificationTokenRepository()
	listingRepo := repositories.NewListingRepository()

	accountManager := managers.NewAccountManager(accountRepo)

	accountService := services.NewAccountService(cfg, accountManager, tokenRepo, emailProvider)
	listingService := services.NewListingService(listingRepo, accountManager)

	return &services.ServiceContainer{
		AccountService: accountService,
		ListingService: listingService,
		EmailProvider:  emailProvider,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AccountHandler: handlers.NewAccountHandler(baseHandler, serviceContainer.AccountService),
		ListingHandler: handlers.NewListingHandler(baseHandler, serviceContainer.ListingService),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// newEmailProvider returns the SMTP provider when mail settings are usable,
// otherwise a mock that records messages in memory. Local development runs
// without an SMTP server.
func newEmailProvider(cfg *config.Config) email.Provider {
	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Warn("SMTP not configured, falling back to mock email provider", "error", err)
		return email.NewMockProvider()
	}
	return provider
}
