// Package cli はnmsctlのサブコマンドを提供する。
package cli

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oyaguma3/lte-nms/apps/nmsctl/internal/config"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
)

// APIFactory は設定からオーケストレータクライアントを生成する。
type APIFactory func(cfg *config.Config) magma.SubscriberAPI

// NewAPI は設定に従って本物のオーケストレータクライアントを生成する。
func NewAPI(cfg *config.Config) magma.SubscriberAPI {
	return magma.NewClient(magma.Options{
		BaseURL:          cfg.OrchestratorURL,
		Timeout:          cfg.OrchestratorTimeout,
		FailureThreshold: cfg.CBFailureThreshold,
	})
}

// app はサブコマンド間で共有する状態
type app struct {
	factory APIFactory
	cfg     *config.Config
	masker  *logging.Masker

	orchestratorURL string
	timeout         time.Duration
	concurrency     int
}

// NewRootCommand はnmsctlのルートコマンドを生成する。
func NewRootCommand(factory APIFactory) *cobra.Command {
	a := &app{factory: factory}

	root := &cobra.Command{
		Use:           "nmsctl",
		Short:         "Manage LTE subscribers from the command line",
		Long:          "nmsctl validates subscriber CSV files and imports or exports them through the orchestrator API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.orchestratorURL, "orchestrator", "", "orchestrator base URL (overrides ORC8R_URL)")
	flags.DurationVar(&a.timeout, "timeout", 0, "orchestrator request timeout (overrides ORC8R_TIMEOUT)")
	flags.IntVar(&a.concurrency, "concurrency", 0, "concurrent create requests during import (overrides IMPORT_CONCURRENCY)")

	root.AddCommand(
		newValidateCommand(a),
		newImportCommand(a),
		newExportCommand(a),
	)
	return root
}

// load は環境変数の設定を読み込み、指定されたフラグで上書きする。
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("orchestrator") {
		cfg.OrchestratorURL = a.orchestratorURL
	}
	if flags.Changed("timeout") {
		cfg.OrchestratorTimeout = a.timeout
	}
	if flags.Changed("concurrency") {
		cfg.ImportConcurrency = a.concurrency
	}

	a.cfg = cfg
	a.masker = logging.NewMasker(cfg.LogMaskIMSI)
	initLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// api は検証済みの設定でオーケストレータクライアントを返す。
func (a *app) api() (magma.SubscriberAPI, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return a.factory(a.cfg), nil
}

// initLogger はロガーを初期化する。出力は標準エラーとし、CSV出力と混ざらないようにする。
func initLogger(w io.Writer, logLevel string) {
	level := slog.LevelWarn
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("app", "nmsctl")
	slog.SetDefault(logger)
}
