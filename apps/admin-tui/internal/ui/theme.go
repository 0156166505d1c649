package ui

import "github.com/gdamore/tcell/v2"

// 色定義
var (
	ColorBorder      = tcell.ColorBlue
	ColorLayerBorder = tcell.ColorTeal
	ColorHeader      = tcell.ColorYellow
	ColorDim         = tcell.ColorGray
	ColorSuccess     = tcell.ColorGreen
	ColorWarning     = tcell.ColorYellow
	ColorError       = tcell.ColorRed
	ColorInfo        = tcell.ColorTeal
	ColorStatusBg    = tcell.ColorDarkBlue
)

// StyleSuccess は成功スタイルを適用した文字列を返す。
func StyleSuccess(text string) string {
	return "[green]" + text + "[-]"
}

// StyleError はエラースタイルを適用した文字列を返す。
func StyleError(text string) string {
	return "[red]" + text + "[-]"
}

// StyleWarning は警告スタイルを適用した文字列を返す。
func StyleWarning(text string) string {
	return "[yellow]" + text + "[-]"
}

// StyleBold は太字スタイルを適用した文字列を返す。
func StyleBold(text string) string {
	return "[::b]" + text + "[::-]"
}
