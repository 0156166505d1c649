package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// KeyBinding はキーバインドの情報を表す。KeyとRuneはどちらか一方を使う。
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
}

// String はヘルプ表示用のキー名を返す。
func (b KeyBinding) String() string {
	if b.Key == 0 {
		return string(b.Rune)
	}
	if name, ok := keyNames[b.Key]; ok {
		return name
	}
	return "?"
}

var keyNames = map[tcell.Key]string{
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyTab:        "Tab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyDown:       "Down",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEsc:        "Esc",
	tcell.KeyCtrlQ:      "Ctrl+Q",
}

// HelpSection はヘルプのセクションを表す。
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// HelpSections は画面共通のヘルプセクションを返す。
func HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Subscribers",
			Bindings: []KeyBinding{
				{tcell.KeyF2, 'n', "Create subscriber"},
				{tcell.KeyF3, 'e', "Edit selected"},
				{tcell.KeyF4, 'd', "Delete selected"},
				{tcell.KeyF5, 'r', "Refresh from orchestrator"},
				{0, '/', "Filter by ID or name"},
				{tcell.KeyPgDn, 0, "Next page"},
			},
		},
		{
			Title: "Form",
			Bindings: []KeyBinding{
				{tcell.KeyTab, 0, "Next field"},
				{tcell.KeyEnter, 0, "Open menu / accept suggestion"},
				{tcell.KeyDown, 0, "Move into suggestions"},
				{tcell.KeyBackspace2, 0, "Remove last APN on empty input"},
				{tcell.KeyEsc, 0, "Close menu or cancel"},
			},
		},
		{
			Title: "Global",
			Bindings: []KeyBinding{
				{tcell.KeyF1, 0, "Show this help"},
				{tcell.KeyCtrlQ, 0, "Exit application"},
			},
		},
	}
}

// FormatHelp はヘルプセクションを表示用テキストに整形する。
// RuneとKeyの両方を持つ項目は "F2/n" のように併記する。
func FormatHelp(sections []HelpSection) string {
	var sb strings.Builder
	for i, section := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(StyleBold(section.Title) + "\n")
		for _, b := range section.Bindings {
			key := b.String()
			if b.Key != 0 && b.Rune != 0 {
				key += "/" + string(b.Rune)
			}
			sb.WriteString("  " + key + "  " + b.Description + "\n")
		}
	}
	return sb.String()
}

// NewHelpModal はヘルプモーダルを生成する。
func NewHelpModal(onClose func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(FormatHelp(HelpSections())).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" Help ").
		SetBorder(true).
		SetBorderColor(ColorInfo)
	return modal
}
