package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// 構造エラー。いずれもバッチ全体を失敗させ、ネットワーク呼び出しは発生しない。
var (
	ErrNotTextFile    = errors.New("file is not a text file")
	ErrEmptyFile      = errors.New("file is empty")
	ErrHeaderMismatch = errors.New("header does not match template")
	ErrTooManyRows    = fmt.Errorf("too many rows: at most %d subscribers can be uploaded at once", MaxUploadRows)
	ErrIncompleteRow  = errors.New("incomplete row")
	ErrInvalidKey     = errors.New("invalid key: expected 32 hex characters")
	ErrInvalidIMSI    = errors.New("invalid imsi: expected 10 to 15 digits")
)

// HeaderError はヘッダー不一致の詳細を表す
type HeaderError struct {
	Got []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q",
		ErrHeaderMismatch.Error(),
		strings.Join(Template, ","),
		strings.Join(e.Got, ","),
	)
}

func (e *HeaderError) Unwrap() error {
	return ErrHeaderMismatch
}

// RowError は行単位の検証エラーを表す。Lineはヘッダーを1行目とする行番号。
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsStructural はエラーがCSVの構造・検証エラーかどうかを判定する。
// 構造エラーはユーザー入力の誤りとして400相当で扱う。
func IsStructural(err error) bool {
	for _, target := range []error{
		ErrNotTextFile,
		ErrEmptyFile,
		ErrHeaderMismatch,
		ErrTooManyRows,
		ErrIncompleteRow,
		ErrInvalidKey,
		ErrInvalidIMSI,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
