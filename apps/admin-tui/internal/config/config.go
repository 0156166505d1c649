// Package config はAdmin TUIの設定管理を提供する。
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// MaxImportConcurrency はインポート時の同時リクエスト数の上限。
const MaxImportConcurrency = 50

// Config はAdmin TUIの設定を表す。
type Config struct {
	// オーケストレータ設定
	OrchestratorURL     string        `envconfig:"ORC8R_URL" required:"true"`
	OrchestratorTimeout time.Duration `envconfig:"ORC8R_TIMEOUT" default:"10s"`
	CBFailureThreshold  int           `envconfig:"CB_FAILURE_THRESHOLD" default:"5"`

	// 操作対象ネットワーク。空の場合は起動時に先頭のネットワークを使う。
	NetworkID string `envconfig:"NETWORK_ID"`

	// フォームの選択肢
	SubProfiles   []string `envconfig:"SUB_PROFILES" default:"default"`
	APNCandidates []string `envconfig:"APN_CANDIDATES" default:"internet,ims"`

	// インポート設定
	ImportConcurrency int `envconfig:"IMPORT_CONCURRENCY" default:"10"`

	// ログ設定（画面と混ざらないようファイルへ出力する）
	AdminUser    string `envconfig:"ADMIN_USER" default:"admin"`
	LogFile      string `envconfig:"LOG_FILE" default:"admin-tui.log"`
	AuditLogFile string `envconfig:"AUDIT_LOG_FILE" default:"admin-tui-audit.log"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIMSI  bool   `envconfig:"LOG_MASK_IMSI" default:"true"`
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
	if c.OrchestratorTimeout <= 0 {
		return errors.New("ORC8R_TIMEOUT must be positive")
	}
	if c.ImportConcurrency < 1 || c.ImportConcurrency > MaxImportConcurrency {
		return fmt.Errorf("IMPORT_CONCURRENCY must be between 1 and %d", MaxImportConcurrency)
	}
	if len(c.SubProfiles) == 0 {
		return errors.New("SUB_PROFILES must not be empty")
	}
	return nil
}
