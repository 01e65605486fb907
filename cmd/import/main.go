package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/importer"
	"github.com/kkapil94/outflo-assignment/internal/logger"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/internal/storage"
	"go.uber.org/zap"
)

// Imports campaigns from a CSV file through the campaign service
func main() {
	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	// Loads .env as well
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	repo, closeStore, err := storage.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open campaign store", zap.Error(err))
	}
	defer func() { _ = closeStore(context.Background()) }()

	file, err := os.Open(csvFilePath)
	if err != nil {
		zlog.Fatal("Failed to open CSV file", zap.String("path", csvFilePath), zap.Error(err))
	}
	defer file.Close()

	svc := services.NewCampaignService(repo, zlog)
	result, err := importer.NewImporter(svc, zlog).Import(ctx, file)
	if err != nil {
		zlog.Fatal("Failed to import campaigns", zap.Error(err))
	}

	for _, rowErr := range result.Errors {
		fmt.Fprintln(os.Stderr, rowErr.Error())
	}
	fmt.Printf("Imported %d of %d campaigns\n", len(result.Created), result.TotalRows)
}
