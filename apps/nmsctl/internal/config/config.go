// Package config はnmsctlの設定を環境変数から読み込む。
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はnmsctlの設定を表す。コマンドラインフラグで上書きできる。
type Config struct {
	OrchestratorURL     string        `envconfig:"ORC8R_URL" default:"http://localhost:9443"`
	OrchestratorTimeout time.Duration `envconfig:"ORC8R_TIMEOUT" default:"10s"`
	CBFailureThreshold  int           `envconfig:"CB_FAILURE_THRESHOLD" default:"5"`
	ImportConcurrency   int           `envconfig:"IMPORT_CONCURRENCY" default:"10"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"WARN"`
	LogMaskIMSI         bool          `envconfig:"LOG_MASK_IMSI" default:"true"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate はオーケストレータに接続するコマンド向けに設定を検証する。
func (c *Config) Validate() error {
	u, err := url.Parse(c.OrchestratorURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("orchestrator URL must be an absolute http(s) URL, got %q", c.OrchestratorURL)
	}
	if c.OrchestratorTimeout <= 0 {
		return errors.New("orchestrator timeout must be positive")
	}
	if c.ImportConcurrency < 1 {
		return errors.New("import concurrency must be positive")
	}
	return nil
}
