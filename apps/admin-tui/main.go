// Admin TUI - LTE NMS加入者管理コンソール
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/config"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui/importexport"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui/subscriber"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
)

// connectTimeout は起動時の疎通確認のタイムアウト
const connectTimeout = 5 * time.Second

// ページ名
const (
	pageMainMenu       = "main-menu"
	pageSubscriberList = "subscriber-list"
	pageSubscriberForm = "subscriber-form"
	pageImport         = "import-screen"
	pageExport         = "export-screen"
	pageHelp           = "help"
	pageStartupError   = "startup-error"
	pageDeleteConfirm  = "delete-confirm"
)

// Application はアプリケーション全体を管理する。
type Application struct {
	app         *ui.App
	cfg         *config.Config
	client      *magma.Client
	importer    *csvimport.Importer
	auditLogger *audit.Logger
	actor       audit.Actor
	networkID   string
}

func main() {
	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// ログはファイルへ出力する（標準出力は画面描画に使われる）
	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	initLogger(cfg, logFile)

	auditFile, err := openLogFile(cfg.AuditLogFile)
	if err != nil {
		log.Fatalf("failed to open audit log file: %v", err)
	}
	defer auditFile.Close()

	masker := logging.NewMasker(cfg.LogMaskIMSI)
	client := magma.NewClient(magma.Options{
		BaseURL:          cfg.OrchestratorURL,
		Timeout:          cfg.OrchestratorTimeout,
		FailureThreshold: cfg.CBFailureThreshold,
	})

	application := &Application{
		app:         ui.NewApp(),
		cfg:         cfg,
		client:      client,
		importer:    csvimport.NewImporter(client, cfg.ImportConcurrency, masker),
		auditLogger: audit.NewLoggerWithWriter(auditFile, "admin-tui", masker),
		actor:       audit.Actor{User: cfg.AdminUser},
		networkID:   cfg.NetworkID,
	}
	application.setupGlobalKeyBindings()

	slog.Info("starting admin-tui",
		"orchestrator_url", cfg.OrchestratorURL,
		"network_id", cfg.NetworkID,
	)

	if err := application.connect(); err != nil {
		slog.Error("failed to reach orchestrator", "event_id", "ORC8R_CONN_ERR", "error", err)
		application.showStartupError(err.Error())
	} else {
		application.showMainMenu()
	}

	if err := application.app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func openLogFile(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config, w io.Writer) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("app", "admin-tui"))
}

// connect はオーケストレータへの疎通を確認し、操作対象ネットワークを決定する。
func (a *Application) connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	networks, err := a.client.ListNetworks(ctx)
	if err != nil {
		return err
	}
	if a.cfg.NetworkID == "" {
		if len(networks) == 0 {
			return fmt.Errorf("no LTE networks are registered")
		}
		a.networkID = networks[0]
		return nil
	}
	for _, n := range networks {
		if n == a.cfg.NetworkID {
			a.networkID = n
			return nil
		}
	}
	return fmt.Errorf("network %q not found", a.cfg.NetworkID)
}

func (a *Application) showStartupError(errorMessage string) {
	modal := ui.NewStartupErrorScreen(
		a.cfg.OrchestratorURL,
		a.cfg.NetworkID,
		errorMessage,
		func() {
			// Retry
			if err := a.connect(); err != nil {
				a.app.GetStatusBar().ShowError("Connection failed: " + err.Error())
				return
			}
			a.app.CloseModal(pageStartupError)
			a.showMainMenu()
		},
		a.app.Stop,
	)
	a.app.OpenModal(pageStartupError, modal)
}

func (a *Application) showMainMenu() {
	items := []ui.MenuItem{
		{Label: "Subscribers", Description: "List, create, edit and delete subscribers", Key: '1', Action: a.showSubscriberList},
		{Label: "Import", Description: "Import subscribers from a CSV file", Key: '2', Action: a.showImportScreen},
		{Label: "Export", Description: "Export subscribers to a CSV file", Key: '3', Action: a.showExportScreen},
		{Label: "Exit", Description: "Quit the console", Key: 'q', Action: a.app.Stop},
	}
	menu := ui.NewMainMenu(a.networkID, items, a.app.Stop)

	a.app.ShowScreen(pageMainMenu, menu)
	a.app.GetStatusBar().SetDefaultText("F1 Help | Ctrl+Q Quit | " + a.cfg.OrchestratorURL)
	a.app.GetStatusBar().ShowDefault()
}

func (a *Application) setupGlobalKeyBindings() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlQ:
			a.app.Stop()
			return nil
		case tcell.KeyF1:
			a.showHelp()
			return nil
		}
		return event
	})
}

func (a *Application) showHelp() {
	if a.app.HasPage(pageHelp) {
		return
	}
	modal := ui.NewHelpModal(func() {
		a.app.CloseModal(pageHelp)
	})
	a.app.OpenModal(pageHelp, modal)
}

// Subscriber Management
func (a *Application) showSubscriberList() {
	screen := subscriber.NewListScreen(a.app, a.client, a.networkID)

	screen.SetOnCreate(func() {
		a.showSubscriberForm("")
	})
	screen.SetOnEdit(func(id string) {
		a.showSubscriberForm(id)
	})
	screen.SetOnDelete(func(id string) {
		a.showDeleteConfirm(id, func() {
			ctx := context.Background()
			if err := a.client.DeleteSubscriber(ctx, a.networkID, id); err != nil {
				a.app.GetStatusBar().ShowError("Failed to delete: " + err.Error())
				return
			}
			a.auditLogger.LogDelete(a.actor, a.networkID, id)
			a.app.GetStatusBar().ShowSuccess("Subscriber deleted: " + id)
			if err := screen.Load(ctx); err != nil {
				a.app.GetStatusBar().ShowError("Failed to reload: " + err.Error())
			}
		})
	})
	screen.SetOnBack(func() {
		a.app.BackTo(pageSubscriberList, pageMainMenu)
	})

	a.app.ShowScreen(pageSubscriberList, screen.GetTable())

	go func() {
		err := screen.Load(context.Background())
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.app.GetStatusBar().ShowError("Failed to load: " + err.Error())
			}
		})
	}()
}

// showSubscriberForm は加入者フォームを表示する。idが空の場合は新規作成。
func (a *Application) showSubscriberForm(id string) {
	screen := subscriber.NewFormScreen(a.app, a.client, a.networkID, a.auditLogger, a.actor, subscriber.FormOptions{
		SubProfiles: a.cfg.SubProfiles,
		APNs:        a.cfg.APNCandidates,
	})

	screen.SetOnSave(func() {
		a.app.CloseModal(pageSubscriberForm)
		a.showSubscriberList()
	})
	screen.SetOnCancel(func() {
		a.app.CloseModal(pageSubscriberForm)
	})

	if id != "" {
		if err := screen.SetupEdit(context.Background(), id); err != nil {
			a.app.GetStatusBar().ShowError("Failed to load subscriber: " + err.Error())
			return
		}
	} else {
		screen.SetupCreate()
	}

	a.app.OpenModal(pageSubscriberForm, ui.Centered(screen.GetForm(), 64, 19))
}

// Import/Export
func (a *Application) showImportScreen() {
	screen := importexport.NewImportScreen(a.app, a.importer, a.networkID, a.auditLogger, a.actor)
	screen.SetOnCancel(func() {
		a.app.BackTo(pageImport, pageMainMenu)
	})

	a.app.ShowScreen(pageImport, screen.GetFlex())
}

func (a *Application) showExportScreen() {
	screen := importexport.NewExportScreen(a.app, a.client, a.networkID, a.auditLogger, a.actor)
	screen.SetOnCancel(func() {
		a.app.BackTo(pageExport, pageMainMenu)
	})

	a.app.ShowScreen(pageExport, screen.GetFlex())
}

// Helpers
func (a *Application) showDeleteConfirm(id string, onConfirm func()) {
	modal := ui.NewConfirmDialog(
		"Confirm Delete",
		"Are you sure you want to delete this subscriber?\n\n"+id,
		func() {
			a.app.CloseModal(pageDeleteConfirm)
			onConfirm()
		},
		func() {
			a.app.CloseModal(pageDeleteConfirm)
		},
	)
	a.app.OpenModal(pageDeleteConfirm, modal)
}
