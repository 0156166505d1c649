package ui

import (
	"github.com/rivo/tview"
)

// Centered はプリミティブを画面中央に固定サイズで配置する。
func Centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// NewConfirmDialog はYes/Noの確認モーダルを生成する。
func NewConfirmDialog(title, message string, onConfirm, onCancel func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(_ int, buttonLabel string) {
			if buttonLabel == "Yes" {
				if onConfirm != nil {
					onConfirm()
				}
				return
			}
			if onCancel != nil {
				onCancel()
			}
		})
	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(ColorWarning)
	return modal
}

// NewMessageDialog はOKボタンのみの通知モーダルを生成する。
// isErrorがtrueの場合はエラー表示になる。
func NewMessageDialog(title, message string, isError bool, onClose func()) *tview.Modal {
	color := ColorInfo
	if isError {
		color = ColorError
		message = "✗ ERROR\n\n" + message
	}
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})
	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(color)
	return modal
}

// InputDialog は1行入力のダイアログを表す。
type InputDialog struct {
	form  *tview.Form
	input *tview.InputField
}

// NewInputDialog は新しいInputDialogを生成する。
func NewInputDialog(title, label, defaultValue string, onSubmit func(value string), onCancel func()) *InputDialog {
	input := tview.NewInputField().
		SetLabel(label).
		SetText(defaultValue).
		SetFieldWidth(20)

	form := tview.NewForm().
		AddFormItem(input).
		AddButton("OK", func() {
			if onSubmit != nil {
				onSubmit(input.GetText())
			}
		}).
		AddButton("Cancel", func() {
			if onCancel != nil {
				onCancel()
			}
		})

	form.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(ColorBorder)

	return &InputDialog{form: form, input: input}
}

// GetForm は内部のtview.Formを返す。
func (d *InputDialog) GetForm() *tview.Form {
	return d.form
}
