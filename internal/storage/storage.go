// Package storage opens the campaign repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/repositories"
	"github.com/kkapil94/outflo-assignment/internal/repositories/memory"
	mongorepo "github.com/kkapil94/outflo-assignment/internal/repositories/mongodb"
	"github.com/kkapil94/outflo-assignment/pkg/mongodb"
	"go.uber.org/zap"
)

// CloseFunc releases whatever the repository holds open
type CloseFunc func(ctx context.Context) error

// Open connects the configured campaign store
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.CampaignRepository, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("Using in-memory campaign store; data is lost on exit")
		return memory.NewCampaignRepository(), func(context.Context) error { return nil }, nil

	case config.StorageMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, nil, err
		}

		repo := mongorepo.NewCampaignRepository(client.Database(cfg.MongoDB.Database))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to create campaign indexes: %w", err)
		}

		logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB.Database))
		return repo, client.Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
