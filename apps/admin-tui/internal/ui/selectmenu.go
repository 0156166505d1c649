package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/layer"
)

// maxMenuRows はメニューに同時に表示する項目数の上限
const maxMenuRows = 8

// SelectMenu は入力欄の下（収まらなければ上）に選択肢を表示するメニュー。
// 入力欄は直接編集できず、Enterまたは↓で選択肢を開く。
type SelectMenu struct {
	*tview.InputField
	host     LayerHost
	name     string
	list     *tview.List
	layer    *ContextualLayer
	options  []string
	onChange func(value string)
}

// NewSelectMenu は新しいSelectMenuを生成する。
func NewSelectMenu(host LayerHost, label string, options []string) *SelectMenu {
	field := tview.NewInputField().
		SetLabel(label).
		SetFieldWidth(20).
		SetAcceptanceFunc(func(string, rune) bool { return false })

	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetBorderColor(ColorLayerBorder)

	m := &SelectMenu{
		InputField: field,
		host:       host,
		name:       "select-menu:" + label,
		list:       list,
		options:    options,
	}
	m.layer = NewContextualLayer(PrimitiveNode(field), list, 20, menuHeight(len(options)),
		layer.Options{Placement: layer.Below, Alignment: layer.AlignStretch})

	for _, opt := range options {
		value := opt
		list.AddItem(value, "", 0, func() {
			m.Select(value)
			m.Close()
		})
	}
	list.SetDoneFunc(m.Close)

	if len(options) > 0 {
		field.SetText(options[0])
	}

	field.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyDown:
			m.Open()
			return nil
		}
		return event
	})

	return m
}

// menuHeight は項目数に応じたメニューの高さ（枠線込み）を返す。
func menuHeight(n int) int {
	return min(n, maxMenuRows) + 2
}

// SetOnChange は選択値が変わったときのハンドラを設定する。
func (m *SelectMenu) SetOnChange(handler func(value string)) *SelectMenu {
	m.onChange = handler
	return m
}

// Open は選択肢を表示し、フォーカスを移す。
func (m *SelectMenu) Open() {
	if m.host == nil || len(m.options) == 0 {
		return
	}
	for i, opt := range m.options {
		if opt == m.GetText() {
			m.list.SetCurrentItem(i)
		}
	}
	m.host.ShowLayer(m.name, m.layer)
	m.host.SetFocus(m.list)
}

// Close は選択肢を閉じ、入力欄にフォーカスを戻す。
func (m *SelectMenu) Close() {
	if m.host == nil {
		return
	}
	m.host.HideLayer(m.name)
	m.host.SetFocus(m.InputField)
}

// Select は値を選択する。選択肢にない値は無視する。
func (m *SelectMenu) Select(value string) bool {
	for _, opt := range m.options {
		if opt == value {
			changed := m.GetText() != value
			m.SetText(value)
			if changed && m.onChange != nil {
				m.onChange(value)
			}
			return true
		}
	}
	return false
}

// Value は選択中の値を返す。
func (m *SelectMenu) Value() string {
	return m.GetText()
}

// Layer は選択肢を表示するレイヤーを返す。
func (m *SelectMenu) Layer() *ContextualLayer {
	return m.layer
}
