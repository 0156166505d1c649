// Package main はオーケストレータモック（Magma互換の加入者API）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oyaguma3/lte-nms/apps/orchestrator-mock/internal/config"
	"github.com/oyaguma3/lte-nms/apps/orchestrator-mock/internal/handler"
	"github.com/oyaguma3/lte-nms/apps/orchestrator-mock/internal/server"
	"github.com/oyaguma3/lte-nms/apps/orchestrator-mock/internal/store"
	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting orchestrator-mock",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"fail_imsi_prefix", cfg.FailIMSIPrefix,
	)

	// 3. Valkey接続
	client, err := valkey.NewClient(context.Background(), cfg.ValkeyOptions())
	if err != nil {
		slog.Error("failed to connect to Valkey", "event_id", "VALKEY_CONN_ERR", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	// 4. 初期ネットワーク登録
	st := store.New(client)
	seedNetworks(st, cfg.SeedNetworks)

	// 5. サーバー起動
	h := handler.NewHandler(st, cfg.FailIMSIPrefix, logging.NewMasker(cfg.LogMaskIMSI))
	srv := server.New(cfg, h)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 6. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// seedNetworks は設定されたネットワークを登録する。登録済みのものは無視する。
func seedNetworks(st *store.Store, ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		err := st.CreateNetwork(ctx, id)
		switch {
		case err == nil:
			slog.Info("network seeded", "network_id", id)
		case errors.Is(err, apperr.ErrNetworkExists):
		default:
			slog.Warn("failed to seed network", "network_id", id, "error", err)
		}
	}
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	logHandler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(logHandler).With("app", "orchestrator-mock")
	slog.SetDefault(logger)
}
