// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// subscriberIDPrefix は加入者IDのプレフィックス。
// pkg/modelへの依存を避けるためここで再定義する。
const subscriberIDPrefix = "IMSI"

// IMSIのうちマスクせずに残す桁数。先頭はMCC+MNC、末尾は1桁。
const (
	imsiKeepPrefix = 6
	imsiKeepSuffix = 1
	maskChar       = '*'
)

// Masker はログに出力するIMSIをマスキングする。
// nilのMaskerはマスキングしない。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// Enabled はマスキングが有効かどうかを返す。
func (m *Masker) Enabled() bool {
	return m != nil && m.enabled
}

// IMSI はIMSIまたは加入者IDをマスキングする。
// 例: 440101234567890 → 440101********0、IMSI440101234567890 → IMSI440101********0
func (m *Masker) IMSI(imsi string) string {
	if !m.Enabled() {
		return imsi
	}
	if digits, ok := strings.CutPrefix(imsi, subscriberIDPrefix); ok {
		return subscriberIDPrefix + maskMiddle(digits)
	}
	return maskMiddle(imsi)
}

// IMSIList は複数のIMSIをまとめてマスキングする。
func (m *Masker) IMSIList(imsis []string) []string {
	masked := make([]string, len(imsis))
	for i, imsi := range imsis {
		masked[i] = m.IMSI(imsi)
	}
	return masked
}

// maskMiddle は先頭と末尾を残して間をマスクする。短すぎる値はそのまま返す。
func maskMiddle(s string) string {
	runes := []rune(s)
	if len(runes) <= imsiKeepPrefix+imsiKeepSuffix {
		return s
	}
	for i := imsiKeepPrefix; i < len(runes)-imsiKeepSuffix; i++ {
		runes[i] = maskChar
	}
	return string(runes)
}
