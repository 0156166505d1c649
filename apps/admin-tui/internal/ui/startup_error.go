package ui

import (
	"github.com/rivo/tview"
)

// NewStartupErrorScreen はオーケストレータに接続できない場合の画面を生成する。
func NewStartupErrorScreen(orchestratorURL, networkID, errorMessage string, onRetry, onExit func()) *tview.Modal {
	text := "Failed to reach the orchestrator:\n\n" + errorMessage +
		"\n\nPlease check:\n- ORC8R_URL (" + orchestratorURL + ") is reachable" +
		"\n- network " + networkID + " exists"

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Retry", "Exit"}).
		SetDoneFunc(func(_ int, buttonLabel string) {
			if buttonLabel == "Retry" {
				if onRetry != nil {
					onRetry()
				}
				return
			}
			if onExit != nil {
				onExit()
			}
		})

	modal.SetTitle(" Connection Error ").
		SetBorder(true).
		SetBorderColor(ColorError)
	return modal
}
