package store

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/virtual-closet/config"
	"github.com/raushankrgupta/virtual-closet/logger"
)

// Open builds the backend named by config.StoreBackend.
func Open(log *logger.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		backend Backend
		err     error
	)
	switch config.StoreBackend {
	case "sqlite", "":
		backend, err = NewSQLite(ctx, config.SQLitePath)
	case "postgres":
		backend, err = NewPostgres(ctx, config.DatabaseURL)
	case "mongo":
		backend, err = NewMongo(ctx, config.MongoURI, config.DBName)
	case "redis":
		backend, err = NewRedis(ctx, config.RedisAddr, config.RedisPrefix)
	case "memory":
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", config.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", config.StoreBackend, err)
	}
	log.Info("durable store ready", "backend", config.StoreBackend)
	return New(backend, log, config.StoreTimeout), nil
}
