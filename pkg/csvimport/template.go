// Package csvimport は加入者CSVのパース、検証、一括登録を提供する。
package csvimport

// テンプレートの列名
const (
	ColumnIMSI       = "imsi"
	ColumnLTEState   = "lte_state"
	ColumnAuthKey    = "lte_auth_key"
	ColumnAuthOPc    = "lte_auth_opc"
	ColumnSubProfile = "sub_profile"
	ColumnActiveAPNs = "active_apns"
)

// Template は加入者CSVのヘッダー行。順序と綴りが完全に一致する必要がある。
var Template = []string{
	ColumnIMSI,
	ColumnLTEState,
	ColumnAuthKey,
	ColumnAuthOPc,
	ColumnSubProfile,
	ColumnActiveAPNs,
}

// 上限値と区切り文字
const (
	// MaxUploadRows は1ファイルあたりのデータ行数の上限
	MaxUploadRows = 250
	// APNSeparator はactive_apns列のAPN区切り文字
	APNSeparator = ";"
	// DefaultConcurrency は同時に発行する作成リクエスト数の既定値
	DefaultConcurrency = 10
)

// 改行コード
const (
	NewlineCRLF = "\r\n"
	NewlineLF   = "\n"
)
