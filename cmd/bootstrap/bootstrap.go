package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colpoview/config"
	deliveryHttp "colpoview/internal/delivery/http"
	"colpoview/internal/delivery/http/handler"
	"colpoview/internal/delivery/http/middleware"
	"colpoview/internal/infrastructure/store"
	"colpoview/internal/repository"
	"colpoview/internal/service"
	"colpoview/internal/usecase"
	"colpoview/pkg/jwt"
	"colpoview/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Store       store.Store
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Persistent store and token tracking share the redis client when the
	// redis driver is selected; the file and memory drivers track tokens
	// in process.
	var (
		dataStore store.Store
		tokens    store.TokenStore
	)
	switch cfg.Store.Driver {
	case "redis":
		client, err := store.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = client
		dataStore = store.NewRedisStore(client)
		tokens = store.NewRedisTokenStore(client)
	case "memory":
		dataStore = store.NewMemoryStore()
		tokens = store.NewMemoryTokenStore()
	default:
		fileStore, err := store.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		dataStore = fileStore
		tokens = store.NewMemoryTokenStore()
	}
	app.Store = dataStore
	logrus.Infof("Persistent store ready (driver: %s)", cfg.Store.Driver)

	server, err := initializeServer(cfg, dataStore, tokens)
	if err != nil {
		return nil, err
	}
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
func initializeServer(cfg *config.Config, dataStore store.Store, tokens store.TokenStore) (*http.Server, error) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Capability stubs: the only "backends" this application has.
	authenticator, err := service.NewDemoAuthenticator(log, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to build authenticator: %w", err)
	}
	engine := service.NewMockAnalysisEngine(log, cfg.Engine)

	// State holders, loaded from the store once at startup.
	registry := repository.NewPatientRegistry(log, dataStore)
	sessionUsecase := usecase.NewSessionUsecase(log, dataStore)
	themeUsecase := usecase.NewThemeUsecase(log, dataStore)

	authUsecase := usecase.NewAuthUsecase(log, authenticator, sessionUsecase, jwtService, tokens, cfg.Auth.DemoEmail, cfg.App.Env == "demo")
	patientUsecase := usecase.NewPatientUsecase(log, registry)
	analysisUsecase := usecase.NewAnalysisUsecase(log, registry, engine, cfg.Engine.LinkToHistory)
	settingsUsecase := usecase.NewSettingsUsecase(log, sessionUsecase, authenticator)

	authHandler := handler.NewAuthHandler(authUsecase, sessionUsecase, customValidator, jwtService)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	analysisHandler := handler.NewAnalysisHandler(analysisUsecase, customValidator)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, themeUsecase, customValidator)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokens)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(authHandler, patientHandler, analysisHandler, settingsHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes external connections.
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
