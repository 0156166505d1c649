// Package subscriber は加入者管理画面を提供する。
package subscriber

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/format"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/rivo/tview"
)

// apnColumnWidth はAPN列の最大表示幅。
const apnColumnWidth = 24

// ListScreen は加入者一覧画面を表す。
type ListScreen struct {
	table       *tview.Table
	app         *ui.App
	api         magma.SubscriberAPI
	networkID   string
	subscribers []*model.Subscriber
	listing     *ui.Listing[*model.Subscriber]
	onCreate    func()
	onEdit      func(id string)
	onDelete    func(id string)
	onBack      func()
}

// NewListScreen は新しいListScreenを生成する。
func NewListScreen(app *ui.App, api magma.SubscriberAPI, networkID string) *ListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Subscribers ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ui.ColorBorder)

	screen := &ListScreen{
		table:     table,
		app:       app,
		api:       api,
		networkID: networkID,
		listing: ui.NewListing(ui.DefaultPageSize, func(sub *model.Subscriber) []string {
			return []string{sub.ID, sub.Name}
		}),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnCreate は新規作成時のコールバックを設定する。
func (s *ListScreen) SetOnCreate(handler func()) {
	s.onCreate = handler
}

// SetOnEdit は編集時のコールバックを設定する。
func (s *ListScreen) SetOnEdit(handler func(id string)) {
	s.onEdit = handler
}

// SetOnDelete は削除時のコールバックを設定する。
func (s *ListScreen) SetOnDelete(handler func(id string)) {
	s.onDelete = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *ListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *ListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はオーケストレータから加入者一覧を取得して描画する。
func (s *ListScreen) Load(ctx context.Context) error {
	subscribers, err := s.api.ListSubscribers(ctx, s.networkID)
	if err != nil {
		return err
	}
	s.subscribers = subscribers
	s.listing.SetItems(subscribers)
	s.render()
	return nil
}

// Subscribers は読み込み済みの加入者を返す。
func (s *ListScreen) Subscribers() []*model.Subscriber {
	return s.subscribers
}

// SetFilter はフィルタを設定する。
func (s *ListScreen) SetFilter(query string) {
	s.listing.SetQuery(query)
	s.render()
}

// ClearFilter はフィルタをクリアする。
func (s *ListScreen) ClearFilter() {
	s.SetFilter("")
}

// SelectedID は選択行の加入者IDを返す。
func (s *ListScreen) SelectedID() string {
	row, _ := s.table.GetSelection()
	// 0行目はヘッダ
	sub, ok := s.listing.At(row - 1)
	if !ok {
		return ""
	}
	return sub.ID
}

func (s *ListScreen) render() {
	s.table.Clear()

	headers := []string{"ID", "Name", "State", "Sub Profile", "APNs", "Auth Key"}
	for col, header := range headers {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(ui.ColorHeader).
			SetSelectable(false).
			SetExpansion(1))
	}

	pageItems := s.listing.Page()
	for i, sub := range pageItems {
		row := i + 1
		profile := ""
		var key []byte
		if sub.LTE != nil {
			profile = sub.LTE.SubProfile
			key = sub.LTE.AuthKey
		}

		stateColor := ui.ColorSuccess
		if sub.State() != model.StateActive {
			stateColor = ui.ColorWarning
		}

		cells := []*tview.TableCell{
			tview.NewTableCell(sub.ID),
			tview.NewTableCell(sub.Name),
			tview.NewTableCell(string(sub.State())).SetTextColor(stateColor),
			tview.NewTableCell(profile),
			tview.NewTableCell(format.APNs(sub.ActiveAPNs, apnColumnWidth)),
			tview.NewTableCell(format.MaskKey(key)).SetTextColor(ui.ColorDim),
		}
		for col, cell := range cells {
			s.table.SetCell(row, col, cell.SetExpansion(1))
		}
	}

	title := " Subscribers [" + s.networkID + "] "
	if s.listing.Filtered() {
		title += "[yellow](" + s.listing.FilterLabel() + ")[-] "
	}
	title += "[gray]" + s.listing.Summary() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *ListScreen) refresh() {
	if err := s.Load(context.Background()); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
		return
	}
	s.app.GetStatusBar().ShowSuccess("Refreshed")
}

func (s *ListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			if s.listing.Filtered() {
				s.ClearFilter()
			} else if s.onBack != nil {
				s.onBack()
			}
			return nil
		case tcell.KeyF2:
			if s.onCreate != nil {
				s.onCreate()
			}
			return nil
		case tcell.KeyF3, tcell.KeyEnter:
			if id := s.SelectedID(); id != "" && s.onEdit != nil {
				s.onEdit(id)
			}
			return nil
		case tcell.KeyF4:
			if id := s.SelectedID(); id != "" && s.onDelete != nil {
				s.onDelete(id)
			}
			return nil
		case tcell.KeyF5:
			s.refresh()
			return nil
		case tcell.KeyPgUp:
			if s.listing.Prev() {
				s.render()
			}
			return nil
		case tcell.KeyPgDn:
			if s.listing.Next() {
				s.render()
			}
			return nil
		}

		switch event.Rune() {
		case 'n':
			if s.onCreate != nil {
				s.onCreate()
			}
			return nil
		case 'e':
			if id := s.SelectedID(); id != "" && s.onEdit != nil {
				s.onEdit(id)
			}
			return nil
		case 'd':
			if id := s.SelectedID(); id != "" && s.onDelete != nil {
				s.onDelete(id)
			}
			return nil
		case 'r':
			s.refresh()
			return nil
		case '/':
			s.showFilterDialog()
			return nil
		case 'q':
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		}

		return event
	})
}

// filterDialogPage はフィルタ入力ダイアログのページ名
const filterDialogPage = "filter-dialog"

func (s *ListScreen) showFilterDialog() {
	dialog := ui.NewInputDialog(
		"Filter Subscribers",
		"ID or name contains:",
		s.listing.Query(),
		func(value string) {
			s.app.CloseModal(filterDialogPage)
			s.SetFilter(value)
		},
		func() { s.app.CloseModal(filterDialogPage) },
	)
	s.app.OpenModal(filterDialogPage, ui.Centered(dialog.GetForm(), 50, 7))
}
