package slotRepo

import (
	"context"
	"fmt"

	"inkbook/config"
	"inkbook/database"
	"inkbook/utils"

	"go.uber.org/zap"
)

// NewSlotRepository builds the store selected by cfg. When a remote backend
// cannot be reached the repository is still returned, together with the
// connection error, so callers can serve in a degraded mode.
func NewSlotRepository(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (SlotRepository, error) {
	switch cfg.Backend {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("slot store: redis backend selected but REDIS_ADDR is empty")
		}
		client, err := utils.NewRedisClient(ctx, cfg)
		return NewRedisSlotRepo(client, cfg.BookingsKey, logger), err
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("slot store: mongo backend selected but DATABASE_URL is empty")
		}
		client, err := database.Connect(ctx, cfg.MongoURI)
		if client == nil {
			return nil, err
		}
		repo := NewMongoSlotRepo(client, cfg.MongoDatabase, logger)
		if err == nil {
			if idxErr := EnsureIndexes(ctx, repo); idxErr != nil {
				logger.Warn("could not ensure slot indexes", zap.Error(idxErr))
			}
		}
		return repo, err
	case "memory":
		return NewMemorySlotRepo(), nil
	default:
		return nil, fmt.Errorf("slot store: unknown backend %q", cfg.Backend)
	}
}
