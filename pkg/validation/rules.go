// Package validation は加入者入力のバリデーションルールを提供する。
// TUIフォーム、NMSサーバ、CSVインポートで同じ規則を使う。
package validation

import "regexp"

// バリデーション正規表現
var (
	// IMSIPattern はIMSI形式（10〜15桁の数字）
	IMSIPattern = regexp.MustCompile(`^[0-9]{10,15}$`)

	// HexKeyPattern は鍵形式（Auth Key / OPc、32桁の16進数）
	HexKeyPattern = regexp.MustCompile(`^[0-9A-Fa-f]{32}$`)

	// APNPattern はAPN名形式（英数字、ハイフン、ドット）
	APNPattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9.-]{0,62}[a-zA-Z0-9])?$`)

	// SubProfilePattern はサブプロファイル名形式（1-64文字の英数字、ハイフン、アンダースコア）
	SubProfilePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// 定数
const (
	// KeyLength は鍵のバイト長
	KeyLength = 16
	// MaxNameLength は表示名の最大長
	MaxNameLength = 64
	// MaxAPNs は1加入者あたりのAPN数の上限
	MaxAPNs = 16
)
