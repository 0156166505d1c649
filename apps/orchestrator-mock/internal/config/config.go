// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
)

// Config はオーケストレータモックの設定を保持する。
type Config struct {
	valkey.Config

	// サーバー設定
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":9443"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIMSI bool   `envconfig:"LOG_MASK_IMSI" default:"true"`
	GinMode     string `envconfig:"GIN_MODE" default:"release"`

	// 起動時に登録するネットワーク
	SeedNetworks []string `envconfig:"SEED_NETWORKS" default:"net1"`

	// 障害注入: このプレフィックスに一致するIMSIの作成は500を返す
	FailIMSIPrefix string `envconfig:"FAIL_IMSI_PREFIX"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
