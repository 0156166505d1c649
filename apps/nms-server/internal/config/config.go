// Package config は環境変数から設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
)

// Config はNMSサーバーの設定を保持する。
type Config struct {
	// オーケストレータ設定
	OrchestratorURL     string        `envconfig:"ORC8R_URL" required:"true"`
	OrchestratorTimeout time.Duration `envconfig:"ORC8R_TIMEOUT" default:"10s"`
	CBFailureThreshold  int           `envconfig:"CB_FAILURE_THRESHOLD" default:"5"`

	// Valkey設定（テナント情報）
	valkey.Config

	// テナント設定
	SuperuserOrg  string            `envconfig:"SUPERUSER_ORG" default:"superuser"`
	Organizations map[string]string `envconfig:"ORGANIZATIONS"` // 例: acme:net1;net2,beta:net3

	// インポート設定
	ImportConcurrency int   `envconfig:"IMPORT_CONCURRENCY" default:"10"`
	MaxUploadBytes    int64 `envconfig:"MAX_UPLOAD_BYTES" default:"1048576"`

	// サーバー設定
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIMSI  bool   `envconfig:"LOG_MASK_IMSI" default:"true"`
	GinMode      string `envconfig:"GIN_MODE" default:"release"`
	AuditLogFile string `envconfig:"AUDIT_LOG_FILE"` // 空の場合は標準出力
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.OrchestratorURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ORC8R_URL must be an absolute http(s) URL, got %q", c.OrchestratorURL)
	}
	if c.RedisHost == "" {
		return errors.New("REDIS_HOST must not be empty")
	}
	if c.ImportConcurrency < 1 {
		return errors.New("IMPORT_CONCURRENCY must be positive")
	}
	if c.MaxUploadBytes < 1 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
