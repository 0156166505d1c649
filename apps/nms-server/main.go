// Package main はNMS APIサーバーのエントリーポイント。
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/config"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/handler"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/server"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/tenant"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
)

// appName はログに出力するアプリケーション名
const appName = "nms-server"

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting nms-server",
		"listen_addr", cfg.ListenAddr,
		"orchestrator_url", cfg.OrchestratorURL,
		"log_level", cfg.LogLevel,
	)

	// 3. Valkey接続（テナント情報）
	client, err := valkey.NewClient(context.Background(), cfg.ValkeyOptions())
	if err != nil {
		slog.Error("failed to connect to Valkey", "event_id", "VALKEY_CONN_ERR", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	// 4. 組織の初期登録
	tenants := tenant.NewStore(client, cfg.SuperuserOrg)
	if err := seedOrganizations(tenants, cfg.Organizations); err != nil {
		slog.Error("failed to seed organizations", "error", err)
		os.Exit(1)
	}

	// 5. 監査ログ出力先
	masker := logging.NewMasker(cfg.LogMaskIMSI)
	auditLogger, closeAudit, err := newAuditLogger(cfg.AuditLogFile, masker)
	if err != nil {
		slog.Error("failed to open audit log", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	// 6. オーケストレータクライアントとハンドラー
	api := magma.NewClient(magma.Options{
		BaseURL:          cfg.OrchestratorURL,
		Timeout:          cfg.OrchestratorTimeout,
		FailureThreshold: cfg.CBFailureThreshold,
	})
	h := handler.NewHandler(handler.Options{
		API:            api,
		Importer:       csvimport.NewImporter(api, cfg.ImportConcurrency, masker),
		Tenants:        tenants,
		Audit:          auditLogger,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Masker:         masker,
	})

	// 7. サーバー起動
	srv := server.New(cfg, h)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 8. シグナル待機
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

// seedOrganizations は設定された組織と許可ネットワークを登録する。
func seedOrganizations(tenants *tenant.Store, organizations map[string]string) error {
	if len(organizations) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tenants.Seed(ctx, organizations); err != nil {
		return err
	}
	slog.Info("organizations seeded", "count", len(organizations))
	return nil
}

// newAuditLogger は監査ログのLoggerを生成する。pathが空の場合は標準出力に書き込む。
func newAuditLogger(path string, masker *logging.Masker) (*audit.Logger, func(), error) {
	if path == "" {
		return audit.NewLogger(appName, masker), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return audit.NewLoggerWithWriter(f, appName, masker), func() { _ = f.Close() }, nil
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
	logger := slog.New(logHandler).With("app", appName)
	slog.SetDefault(logger)
}
