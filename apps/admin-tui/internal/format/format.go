// Package format は一覧表示向けの文字列整形を提供する。
package format

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Ellipsis は切り詰め時に付加する記号
const Ellipsis = "..."

// Truncate は文字列を最大maxLen文字（ルーン数）に切り詰める。
// 切り詰めた場合は末尾を "..." にする。
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(Ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(Ellipsis)]) + Ellipsis
}

// APNs はAPN一覧をCSVと同じ ";" 区切りで最大maxLen文字に整形する。
func APNs(apns []string, maxLen int) string {
	if len(apns) == 0 {
		return "-"
	}
	return Truncate(strings.Join(apns, ";"), maxLen)
}

// MaskKey は鍵の先頭8桁と末尾4桁のみを16進で表示する。
func MaskKey(key []byte) string {
	if len(key) == 0 {
		return "-"
	}
	h := hex.EncodeToString(key)
	if len(h) <= 12 {
		return h
	}
	return h[:8] + Ellipsis + h[len(h)-4:]
}
