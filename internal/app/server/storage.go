package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sitewatch/internal/platform/config"
	"sitewatch/internal/platform/crypto"
	"sitewatch/internal/platform/db"
	"sitewatch/internal/platform/kv"
)

// OpenStorage builds the configured kv driver, wrapped with encryption
// when DATA_ENCRYPTION_KEY is set.
func OpenStorage(ctx context.Context, cfg config.Config) (kv.Store, error) {
	var storage kv.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		storage = kv.NewMemory()
	case config.DriverFile:
		file, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		storage = file
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		lite, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		storage = lite
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		storage = kv.NewPostgres(pool)
	case config.DriverRedis:
		storage = kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.DataEncryptionKey == "" {
		return storage, nil
	}
	svc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return kv.NewEncrypted(storage, svc), nil
}
