package importexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/rivo/tview"
)

// ExportScreen は加入者CSVのエクスポート画面を表す。
type ExportScreen struct {
	form       *tview.Form
	pathField  *tview.InputField
	resultView *tview.TextView
	flex       *tview.Flex
	app        *ui.App
	api        magma.SubscriberAPI
	networkID  string
	audit      *audit.Logger
	actor      audit.Actor
	onCancel   func()
}

// NewExportScreen は新しいExportScreenを生成する。
func NewExportScreen(app *ui.App, api magma.SubscriberAPI, networkID string, auditLogger *audit.Logger, actor audit.Actor) *ExportScreen {
	pathField := tview.NewInputField().
		SetLabel("Output File").
		SetText(DefaultExportPath(networkID)).
		SetFieldWidth(50)

	form := tview.NewForm().AddFormItem(pathField)
	form.SetBorder(true).
		SetTitle(" Export Subscribers [" + networkID + "] ").
		SetBorderColor(ui.ColorBorder)

	resultView := tview.NewTextView().SetDynamicColors(true)
	resultView.SetBorder(true).
		SetTitle(" Result ").
		SetBorderColor(ui.ColorDim)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 7, 0, true).
		AddItem(resultView, 0, 1, false)

	s := &ExportScreen{
		form:       form,
		pathField:  pathField,
		resultView: resultView,
		flex:       flex,
		app:        app,
		api:        api,
		networkID:  networkID,
		audit:      auditLogger,
		actor:      actor,
	}

	form.AddButton("Export", s.handleExport).
		AddButton("Cancel", s.handleCancel)
	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			s.handleCancel()
			return nil
		}
		return event
	})
	return s
}

// DefaultExportPath は既定の出力ファイル名を返す。
func DefaultExportPath(networkID string) string {
	return "subscribers-" + networkID + ".csv"
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *ExportScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *ExportScreen) GetFlex() *tview.Flex {
	return s.flex
}

// Export はネットワーク配下の全加入者をインポートと同じテンプレート形式で書き出す。
// 書き出した件数を返す。
func (s *ExportScreen) Export(ctx context.Context, path string) (count int, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("output file path is required")
	}

	subs, err := s.api.ListSubscribers(ctx, s.networkID)
	if err != nil {
		return 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := csvimport.WriteCSV(file, subs); err != nil {
		return 0, fmt.Errorf("write CSV: %w", err)
	}

	s.audit.LogExport(s.actor, s.networkID, path, len(subs))
	return len(subs), nil
}

func (s *ExportScreen) handleExport() {
	path := s.pathField.GetText()
	count, err := s.Export(context.Background(), path)
	if err != nil {
		s.resultView.SetText(ui.StyleError("Export failed: " + err.Error()))
		return
	}
	s.resultView.SetText(fmt.Sprintf("%s\n\nExported: %d subscribers\nFile: %s",
		ui.StyleSuccess("Export completed"), count, path))
	s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Exported %d subscribers to %s", count, path))
}

func (s *ExportScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}
