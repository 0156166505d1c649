package apperr

import "fmt"

// ValidationError は入力値の検証エラーを表す。
// errors.Is(err, ErrInvalidRequest) が真になる。
type ValidationError struct {
	Field   string // 検証に失敗したフィールド名
	Message string // 失敗理由
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap はErrInvalidRequestを返す。
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// BackendError はオーケストレータなど上流サービスの異常応答を表す。
type BackendError struct {
	BackendID  string // 上流サービスの識別子
	StatusCode int    // 応答ステータス（接続失敗時は0）
	Cause      error
}

// NewBackendError はBackendErrorを生成する。
func NewBackendError(backendID string, statusCode int, cause error) *BackendError {
	return &BackendError{BackendID: backendID, StatusCode: statusCode, Cause: cause}
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s responded %d", e.BackendID, e.StatusCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ValkeyError はValkeyコマンドの失敗を表す。
type ValkeyError struct {
	Operation string // コマンド名
	Key       string // 対象キー（キーを持たないコマンドでは空）
	Cause     error
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{Operation: operation, Key: key, Cause: cause}
}

func (e *ValkeyError) Error() string {
	target := e.Operation
	if e.Key != "" {
		target += " " + e.Key
	}
	if e.Cause == nil {
		return "valkey " + target + " failed"
	}
	return "valkey " + target + " failed: " + e.Cause.Error()
}

func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// ForbiddenError は組織に許可されていないネットワークへのアクセスを表す。
// errors.Is(err, ErrNetworkForbidden) が真になる。
type ForbiddenError struct {
	Organization string
	NetworkID    string
}

// NewForbiddenError はForbiddenErrorを生成する。
func NewForbiddenError(organization, networkID string) *ForbiddenError {
	return &ForbiddenError{Organization: organization, NetworkID: networkID}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("organization %q may not access network %q", e.Organization, e.NetworkID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrNetworkForbidden
}
