package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem はメニュー項目を表す。
type MenuItem struct {
	Label       string
	Description string
	Key         rune
	Action      func()
}

// NewMainMenu はメインメニューを生成する。
// Escまたはqでは onQuit を呼ぶ。
func NewMainMenu(networkID string, items []MenuItem, onQuit func()) *tview.List {
	list := tview.NewList().ShowSecondaryText(true)
	for _, item := range items {
		list.AddItem(item.Label, item.Description, item.Key, item.Action)
	}

	list.SetTitle(" LTE NMS [" + networkID + "] ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ColorBorder)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == 'q' {
			if onQuit != nil {
				onQuit()
			}
			return nil
		}
		return event
	})
	return list
}
