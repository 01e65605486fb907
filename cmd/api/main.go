package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kkapil94/outflo-assignment/api/routes"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/handlers"
	"github.com/kkapil94/outflo-assignment/internal/logger"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/internal/storage"
	"github.com/kkapil94/outflo-assignment/pkg/llm"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.Mode.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	campaignRepo, closeStore, err := storage.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open campaign store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(shutdownCtx); err != nil {
			zlog.Error("Error closing campaign store", zap.Error(err))
		}
	}()

	generator, err := llm.NewClient(ctx, llm.Config{
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Mock:      cfg.LLM.Mock,
	})
	if err != nil {
		zlog.Fatal("Failed to create LLM client", zap.Error(err))
	}
	if generator.IsMock() {
		zlog.Warn("LLM mock mode enabled; messages are generated locally")
	}

	campaignService := services.NewCampaignService(campaignRepo, zlog)
	messageService := services.NewMessageService(generator, zlog)

	handlerDeps := routes.HandlerDependencies{
		CampaignHandler: handlers.NewCampaignHandler(campaignService, cfg.Server.Mode, zlog),
		MessageHandler:  handlers.NewMessageHandler(messageService, cfg.Server.Mode, zlog),
	}
	router := routes.SetupRouter(cfg, handlerDeps, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("mode", string(cfg.Server.Mode)),
			zap.String("model", generator.Model()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
