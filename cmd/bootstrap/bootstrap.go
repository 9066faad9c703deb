package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-schedule-service/config"
	deliveryHttp "clinic-schedule-service/internal/delivery/http"
	"clinic-schedule-service/internal/delivery/http/handler"
	"clinic-schedule-service/internal/delivery/http/middleware"
	"clinic-schedule-service/internal/domain/entity"
	"clinic-schedule-service/internal/infrastructure/cache"
	"clinic-schedule-service/internal/infrastructure/database"
	"clinic-schedule-service/internal/repository"
	"clinic-schedule-service/internal/service"
	"clinic-schedule-service/internal/usecase"
	"clinic-schedule-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := db.AutoMigrate(
		&entity.DoctorProfile{},
		&entity.ScheduleOverride{},
		&entity.Appointment{},
		&entity.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	doctorRepo := repository.NewDoctorProfileRepository()
	overrideRepo := repository.NewScheduleOverrideRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditRepo := repository.NewAuditLogRepository()
	feeds := repository.NewScheduleFeeds(db, doctorRepo, overrideRepo, appointmentRepo)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditRepo)
	resolver := service.NewScheduleResolver(log, feeds, feeds, cfg.Schedule.CacheTTL, nil)
	slotEngine := service.NewSlotAvailabilityEngine(log, nil)
	overrideLock := service.NewOverrideLock(redisClient, log, cfg.Schedule.OverrideLockTTL)

	// Initialize usecases
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, resolver, slotEngine, feeds, overrideRepo)
	overrideUsecase := usecase.NewScheduleOverrideUsecase(db, log, overrideRepo, doctorRepo, auditService, overrideLock, resolver)
	rosterUsecase := usecase.NewDoctorRosterUsecase(db, log, doctorRepo)

	// Initialize handlers
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, overrideUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(rosterUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(scheduleHandler, doctorHandler, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
