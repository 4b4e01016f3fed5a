package bootstrap

import (
	"testing"

	"github.com/vsinha/ropfeed/pkg/infrastructure/config"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm/logger"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		cfg  config.LogConfig
		want zapcore.Level
	}{
		{config.LogConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LogConfig{Level: "error", Format: "json"}, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		log, err := InitLogger(tt.cfg)
		if err != nil {
			t.Fatalf("InitLogger(%+v) failed: %v", tt.cfg, err)
		}
		if !log.Core().Enabled(tt.want) || (tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1)) {
			t.Errorf("InitLogger(%+v): expected minimum level %s", tt.cfg, tt.want)
		}
	}
}

func TestInitRedisUnconfigured(t *testing.T) {
	if rdb := InitRedis(config.RedisConfig{}); rdb != nil {
		t.Error("expected nil client without a host")
	}
	rdb := InitRedis(config.RedisConfig{Host: "localhost", Port: 6379})
	if rdb == nil {
		t.Fatal("expected a client")
	}
	rdb.Close()
}

func TestGormLogLevel(t *testing.T) {
	if got := gormLogLevel(config.LogConfig{Level: "debug"}); got != logger.Info {
		t.Errorf("expected Info for debug, got %v", got)
	}
	if got := gormLogLevel(config.LogConfig{Level: "info"}); got != logger.Warn {
		t.Errorf("expected Warn for info, got %v", got)
	}
}
