package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vsinha/ropfeed/pkg/infrastructure/bootstrap"
	"github.com/vsinha/ropfeed/pkg/infrastructure/config"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
	"github.com/vsinha/ropfeed/pkg/interfaces/http/handler"
	"go.uber.org/zap"
)

// recentBatches is how many batch event streams the server keeps
const recentBatches = 200

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := bootstrap.InitLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting ropfeed service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	eventStore := events.NewBoundedEventStore(recentBatches)
	eventStore.OnHandlerError = func(e events.Event, err error) {
		zapLogger.Warn("event handler failed", zap.String("event", e.Type()), zap.Error(err))
	}
	eventStore.Subscribe([]string{events.DocumentFailedEvent}, &events.HandlerFunc{
		Types: []string{events.DocumentFailedEvent},
		Fn: func(e events.Event) error {
			failed, _ := e.Data().(events.DocumentFailed)
			zapLogger.Warn("demand fiche left untransmitted",
				zap.String("batch_id", e.StreamID()),
				zap.String("fiche_no", failed.FicheNo),
			)
			return nil
		},
	})

	live, err := bootstrap.NewLive(context.Background(), cfg, zapLogger, eventStore)
	if err != nil {
		zapLogger.Fatal("Failed to wire pipeline", zap.Error(err))
	}
	defer live.Close()

	if cfg.JWT.Secret == "" {
		zapLogger.Warn("JWT secret not set, API is unauthenticated")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		MRP:       handler.NewMRPHandler(live.Service, zapLogger.Named("http")),
		Events:    handler.NewEventsHandler(eventStore),
		Journal:   handler.NewJournalHandler(live.Journal),
		Health:    handler.NewHealthHandler(Version, live.Checks),
		JWTSecret: cfg.JWT.Secret,
		Logger:    zapLogger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
