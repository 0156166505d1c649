// Package ui はTUIアプリケーションのUI層を提供する。
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App はtview.Applicationとページ群をまとめて管理する。
// 全画面のスクリーンは同時に1つだけ表示し、モーダルはその上に重ねる。
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	statusBar *StatusBar
	root      *tview.Flex
	// モーダルを閉じたときに戻すフォーカス。ページ名ごとに保持する。
	returnFocus map[string]tview.Primitive
}

// NewApp は新しいAppを生成する。
func NewApp() *App {
	a := &App{
		app:         tview.NewApplication(),
		pages:       tview.NewPages(),
		returnFocus: make(map[string]tview.Primitive),
	}
	a.statusBar = NewStatusBar(a.QueueUpdateDraw)
	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar.view, 1, 0, false)
	return a
}

// Run はイベントループを開始し、Stopされるまでブロックする。
func (a *App) Run() error {
	return a.app.SetRoot(a.root, true).EnableMouse(false).Run()
}

// Stop はイベントループを終了する。
func (a *App) Stop() {
	a.app.Stop()
}

// GetStatusBar はステータスバーを返す。
func (a *App) GetStatusBar() *StatusBar {
	return a.statusBar
}

// ShowScreen は全画面のスクリーンを登録して切り替え、フォーカスを移す。
// 同名のスクリーンが既にあれば置き換える。
func (a *App) ShowScreen(name string, screen tview.Primitive) {
	a.pages.AddPage(name, screen, true, false)
	a.pages.SwitchToPage(name)
	a.app.SetFocus(screen)
}

// BackTo は現在のスクリーンを破棄して登録済みのスクリーンに戻る。
func (a *App) BackTo(current, name string) {
	if current != "" {
		a.pages.RemovePage(current)
	}
	a.pages.SwitchToPage(name)
	if _, p := a.pages.GetFrontPage(); p != nil {
		a.app.SetFocus(p)
	}
}

// OpenModal は現在の画面の上にモーダルを表示してフォーカスを移す。
// CloseModalで閉じると直前のフォーカスに戻る。
func (a *App) OpenModal(name string, modal tview.Primitive) {
	if _, open := a.returnFocus[name]; !open {
		a.returnFocus[name] = a.app.GetFocus()
	}
	a.pages.AddPage(name, modal, true, true)
	a.app.SetFocus(modal)
}

// CloseModal はモーダルを閉じてフォーカスを戻す。
func (a *App) CloseModal(name string) {
	a.pages.RemovePage(name)
	prev, ok := a.returnFocus[name]
	delete(a.returnFocus, name)
	if ok && prev != nil {
		a.app.SetFocus(prev)
	}
}

// HasPage は指定された名前のページが存在するかどうかを返す。
func (a *App) HasPage(name string) bool {
	return a.pages.HasPage(name)
}

// ShowLayer は浮動レイヤーを最前面に表示する。同名のレイヤーは置き換える。
func (a *App) ShowLayer(name string, l *ContextualLayer) {
	a.pages.AddPage(name, l, false, true)
	a.pages.SendToFront(name)
}

// HideLayer は浮動レイヤーを取り除く。
func (a *App) HideLayer(name string) {
	if a.HasPage(name) {
		a.pages.RemovePage(name)
	}
}

// SetFocus はフォーカスを設定する。
func (a *App) SetFocus(p tview.Primitive) {
	a.app.SetFocus(p)
}

// QueueUpdateDraw はイベントループ上で実行する更新をキューに追加する。
func (a *App) QueueUpdateDraw(f func()) {
	a.app.QueueUpdateDraw(f)
}

// SetInputCapture はグローバルなキー入力ハンドラを設定する。
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	a.app.SetInputCapture(capture)
}

var _ LayerHost = (*App)(nil)
