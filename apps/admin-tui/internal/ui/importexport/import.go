// Package importexport は加入者CSVのインポート/エクスポート画面を提供する。
package importexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/rivo/tview"
)

// failurePage は失敗通知ダイアログのページ名
const failurePage = "import-failures"

// errNotValidated は検証前にインポートしようとした場合のエラー
var errNotValidated = errors.New("validate a CSV file before importing")

// ImportScreen は加入者CSVのインポート画面を表す。
type ImportScreen struct {
	form       *tview.Form
	pathField  *tview.InputField
	resultView *tview.TextView
	flex       *tview.Flex
	app        *ui.App
	importer   *csvimport.Importer
	networkID  string
	audit      *audit.Logger
	actor      audit.Actor
	parsed     *csvimport.ParseResult
	path       string
	running    atomic.Bool
	queue      func(func())
	onCancel   func()
}

// NewImportScreen は新しいImportScreenを生成する。
func NewImportScreen(app *ui.App, importer *csvimport.Importer, networkID string, auditLogger *audit.Logger, actor audit.Actor) *ImportScreen {
	pathField := tview.NewInputField().
		SetLabel("CSV File").
		SetFieldWidth(50)

	form := tview.NewForm().AddFormItem(pathField)
	form.SetBorder(true).
		SetTitle(" Import Subscribers [" + networkID + "] ").
		SetBorderColor(ui.ColorBorder)

	resultView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	resultView.SetBorder(true).
		SetTitle(" Result ").
		SetBorderColor(ui.ColorDim)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 7, 0, true).
		AddItem(resultView, 0, 1, false)

	s := &ImportScreen{
		form:       form,
		pathField:  pathField,
		resultView: resultView,
		flex:       flex,
		app:        app,
		importer:   importer,
		networkID:  networkID,
		audit:      auditLogger,
		actor:      actor,
		queue:      app.QueueUpdateDraw,
	}

	// パスが変わったら検証結果を破棄する
	pathField.SetChangedFunc(func(string) {
		s.parsed = nil
	})

	form.AddButton("Validate", s.handleValidate).
		AddButton("Import", s.handleImport).
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

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *ImportScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *ImportScreen) GetFlex() *tview.Flex {
	return s.flex
}

// Reset は入力欄と結果表示を初期化する。
func (s *ImportScreen) Reset() {
	s.pathField.SetText("")
	s.resultView.Clear()
	s.parsed = nil
	s.path = ""
}

// Validate はファイルを読み込んで全行を検証する。
// 構造的な誤りがあればバッチ全体を拒否し、登録は行わない。
func (s *ImportScreen) Validate(path string) (*csvimport.ParseResult, error) {
	s.parsed = nil
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	parsed, err := csvimport.Parse(data)
	if err != nil {
		return nil, err
	}
	s.parsed = parsed
	s.path = path
	return parsed, nil
}

// pending は検証済みの行と読み込み元パスを返す。
// イベントループ上で呼び出し、戻り値をインポート処理に渡す。
func (s *ImportScreen) pending() ([]csvimport.Row, string, error) {
	if s.parsed == nil {
		return nil, "", errNotValidated
	}
	return s.parsed.Rows, s.path, nil
}

// Import は検証済みの行をオーケストレータに登録する。
// sourceは監査ログに記録する読み込み元パス。
// 行単位の失敗はResultに集計され、エラーにはならない。
func (s *ImportScreen) Import(ctx context.Context, rows []csvimport.Row, source string) (*csvimport.Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, errors.New("import already in progress")
	}
	defer s.running.Store(false)

	total := len(rows)
	var done atomic.Int32
	result := s.importer.Submit(ctx, s.networkID, rows, csvimport.Callbacks{
		OnRow: func(csvimport.RowOutcome) {
			n := done.Add(1)
			s.queue(func() {
				s.resultView.SetText(fmt.Sprintf("Importing... %d/%d", n, total))
			})
		},
		OnFailure: func(imsis []string) {
			s.queue(func() { s.showFailures(imsis) })
		},
	})

	s.audit.LogImport(s.actor, s.networkID, filepath.Base(source), len(result.SucceededIDs), len(result.FailedIMSIs))
	s.queue(func() { s.showResult(result) })
	return result, nil
}

func (s *ImportScreen) handleValidate() {
	parsed, err := s.Validate(s.pathField.GetText())
	if err != nil {
		s.resultView.SetText(ui.StyleError("Validation failed: " + err.Error()))
		return
	}

	newline := "LF"
	if parsed.Newline == csvimport.NewlineCRLF {
		newline = "CRLF"
	}
	s.resultView.SetText(fmt.Sprintf("%s\n\nRows: %d\nLine endings: %s\n\nPress Import to register them in %s.",
		ui.StyleSuccess("Validation passed"), len(parsed.Rows), newline, s.networkID))
}

func (s *ImportScreen) handleImport() {
	if s.parsed == nil {
		// 未検証の場合は検証から行う
		s.handleValidate()
		if s.parsed == nil {
			return
		}
	}
	rows, path, err := s.pending()
	if err != nil {
		s.app.GetStatusBar().ShowError(err.Error())
		return
	}
	go func() {
		if _, err := s.Import(context.Background(), rows, path); err != nil {
			s.queue(func() { s.app.GetStatusBar().ShowError(err.Error()) })
		}
	}()
}

func (s *ImportScreen) showResult(result *csvimport.Result) {
	var sb strings.Builder
	if result.HasFailures() {
		sb.WriteString(ui.StyleWarning("Import finished with failures") + "\n\n")
	} else {
		sb.WriteString(ui.StyleSuccess("Import completed") + "\n\n")
	}
	fmt.Fprintf(&sb, "Succeeded: %d\n", len(result.SucceededIDs))
	fmt.Fprintf(&sb, "Failed:    %d\n", len(result.FailedIMSIs))
	for _, o := range result.Outcomes {
		if !o.Succeeded() {
			fmt.Fprintf(&sb, "  line %d %s: %v\n", o.Line, o.IMSI, o.Err)
		}
	}
	s.resultView.SetText(sb.String())
	s.resultView.ScrollToBeginning()

	if !result.HasFailures() {
		s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Imported %d subscribers", len(result.SucceededIDs)))
	}
}

// showFailures は登録に失敗したIMSIの一覧を通知する。
func (s *ImportScreen) showFailures(imsis []string) {
	message := fmt.Sprintf("%d subscriber(s) could not be created:\n\n%s", len(imsis), strings.Join(imsis, "\n"))
	dialog := ui.NewMessageDialog("Import Failures", message, true, func() {
		s.app.CloseModal(failurePage)
	})
	s.app.OpenModal(failurePage, dialog)
}

func (s *ImportScreen) handleCancel() {
	if s.running.Load() {
		s.app.GetStatusBar().ShowWarning("Import is still running")
		return
	}
	if s.onCancel != nil {
		s.onCancel()
	}
}
