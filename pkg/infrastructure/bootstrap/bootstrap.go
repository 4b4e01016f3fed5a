// Package bootstrap wires the live replenishment pipeline from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vsinha/ropfeed/pkg/application/services/replenishment"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"github.com/vsinha/ropfeed/pkg/infrastructure/catalog/logo"
	"github.com/vsinha/ropfeed/pkg/infrastructure/config"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
	"github.com/vsinha/ropfeed/pkg/infrastructure/gateway/logorest"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/gormstore"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitLogger builds a zap logger: "json" format uses the production
// config, anything else the development one
func InitLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

// InitRedis returns nil when no Redis host is configured
func InitRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr() == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func gormLogLevel(cfg config.LogConfig) logger.LogLevel {
	if cfg.Level == "debug" {
		return logger.Info
	}
	return logger.Warn
}

// Live holds the wired pipeline and the connections behind it
type Live struct {
	Service *replenishment.Service
	// Journal reads back the fiches the service has sent
	Journal repositories.FicheJournalReader
	// Checks report the readiness of every backing store
	Checks map[string]func(ctx context.Context) error

	paramDB   *gorm.DB
	catalogDB *gorm.DB
	redis     *redis.Client
}

// NewLive connects to the parameter store, the Logo catalog and the Logo
// REST API. An unreachable Redis falls back to an in-process token cache.
// events may be nil.
func NewLive(ctx context.Context, cfg *config.Config, log *zap.Logger, eventStore events.EventStore) (*Live, error) {
	live := &Live{Checks: make(map[string]func(ctx context.Context) error)}

	paramDB, err := gormstore.Open(cfg.Database, gormLogLevel(cfg.Log))
	if err != nil {
		return nil, fmt.Errorf("failed to open parameter store: %w", err)
	}
	live.paramDB = paramDB
	if err := gormstore.AutoMigrate(paramDB); err != nil {
		live.Close()
		return nil, fmt.Errorf("failed to migrate parameter store: %w", err)
	}
	live.Checks["parameter_store"] = pingCheck(paramDB)

	catalogDB, err := gormstore.Open(cfg.Catalog, gormLogLevel(cfg.Log))
	if err != nil {
		live.Close()
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	live.catalogDB = catalogDB
	live.Checks["catalog"] = pingCheck(catalogDB)

	var tokenCache logorest.TokenCache
	if rdb := InitRedis(cfg.Redis); rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, caching logo token in process", zap.Error(err))
			rdb.Close()
		} else {
			live.redis = rdb
			tokenCache = logorest.NewRedisTokenCache(rdb)
			live.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	journal, err := gormstore.NewJournalRepository(paramDB, cfg.Server.NodeID)
	if err != nil {
		live.Close()
		return nil, err
	}
	live.Journal = journal

	gateway := logorest.NewClient(logorest.Options{
		BaseURL:      cfg.Logo.BaseURL,
		Username:     cfg.Logo.Username,
		Password:     cfg.Logo.Password,
		ClientID:     cfg.Logo.ClientID,
		ClientSecret: cfg.Logo.ClientSecret,
		Timeout:      cfg.Logo.Timeout,
	}, tokenCache, log.Named("logorest"))

	live.Service = replenishment.NewService(cfg.Pipeline(), replenishment.Dependencies{
		Catalog:    logo.NewCatalog(catalogDB),
		Parameters: gormstore.NewParameterRepository(paramDB),
		Gateway:    gateway,
		Journal:    journal,
		Events:     eventStore,
		Logger:     log.Named("replenishment"),
	})
	return live, nil
}

// Close releases every connection
func (l *Live) Close() {
	for _, db := range []*gorm.DB{l.paramDB, l.catalogDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if l.redis != nil {
		l.redis.Close()
	}
}

func pingCheck(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
