package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"breedid-backend/internal/api"
	"breedid-backend/internal/classifier"
	"breedid-backend/internal/config"
	"breedid-backend/internal/core"
	"breedid-backend/internal/firebase"
	"breedid-backend/internal/middleware"
	"breedid-backend/internal/store"
)

func main() {
	// .env is a local-development convenience; production sets real
	// environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	var logger *zap.Logger
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	userRepo := store.NewUserRepository(db)
	predictionRepo := store.NewPredictionRepository(db)

	// The identity provider is optional. Without it the server still
	// starts, but every authenticated route answers 503.
	var verifier core.TokenVerifier
	var roleMirror store.RoleMirror
	if cfg.FirebaseConfigured() {
		initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		fb, err := firebase.Init(initCtx, cfg)
		cancel()
		if err != nil {
			logger.Fatal("failed to initialize Firebase Admin SDK", zap.Error(err))
		}
		defer fb.Close()
		verifier = fb.Auth
		roleMirror = store.NewFirestoreRoleMirror(fb.Firestore)
		logger.Info("Firebase Admin SDK initialized", zap.String("project", cfg.FirebaseProjectID))
	} else {
		logger.Warn("Firebase credentials not configured; authenticated routes are disabled")
	}

	scorer := classifier.NewClient(cfg.MLServiceURL)

	userService := core.NewUserService(userRepo, verifier, roleMirror, logger)
	predictionService := core.NewPredictionService(predictionRepo, scorer, logger)
	gate := middleware.NewAuthGate(verifier, userService, logger)

	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		router.Use(middleware.CORSMiddleware(origins))
	} else {
		logger.Warn("CLIENT_URL not set; CORS middleware disabled")
	}

	api.SetupRoutes(router, cfg, logger, gate, userService, predictionService, scorer)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("addr", httpServer.Addr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
