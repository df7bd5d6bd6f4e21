package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/api"
	"github.com/guibitar/fit-flow-control-sub001/internal/config"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository/mongo"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"
	"github.com/guibitar/fit-flow-control-sub001/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	var logHandler slog.Handler
	if cfg.Server.Environment == "development" {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(logHandler))
	slog.Info("starting server", "environment", cfg.Server.Environment)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		slog.Error("could not connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			slog.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	slog.Info("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			slog.Error("index creation failed", "error", err)
			return
		}
		slog.Info("database indexes ensured")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	clientRepo := mongo.NewMongoClientRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	classRepo := mongo.NewMongoClassRepository(appDB)
	assessmentRepo := mongo.NewMongoAssessmentRepository(appDB)
	txRepo := mongo.NewMongoTransactionRepository(appDB)
	historyRepo := mongo.NewMongoHistoryRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	txRunner := mongo.NewTxRunner(dbClient)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	svcs := api.Services{
		Auth:     authService,
		Client:   service.NewClientService(clientRepo, planRepo, txRepo),
		Training: service.NewTrainingService(planRepo, historyRepo, clientRepo),
		Schedule: service.NewScheduleService(classRepo, clientRepo, txRepo, txRunner),
		Finance:  service.NewFinanceService(txRepo, clientRepo),
		Progress: service.NewProgressService(assessmentRepo, progressRepo, clientRepo),
		Exercise: service.NewExerciseService(exerciseRepo, fileStorage),
		Message:  service.NewMessageService(messageRepo, userRepo),
	}

	// --- Bootstrap Admin ---
	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
		}
		cancel()
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.Server, svcs)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen and serve error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}
