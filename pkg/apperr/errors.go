// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// 加入者関連エラー
var (
	// ErrSubscriberNotFound は加入者が見つからない場合のエラー
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrSubscriberExists は加入者が既に存在する場合のエラー
	ErrSubscriberExists = errors.New("subscriber already exists")
	// ErrNetworkNotFound はネットワークが見つからない場合のエラー
	ErrNetworkNotFound = errors.New("network not found")
	// ErrNetworkExists はネットワークが既に存在する場合のエラー
	ErrNetworkExists = errors.New("network already exists")
)

// テナント関連エラー
var (
	// ErrOrganizationNotFound は組織が見つからない場合のエラー
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrNetworkForbidden は組織に許可されていないネットワークへのアクセスエラー
	ErrNetworkForbidden = errors.New("network not allowed for organization")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
	// ErrOrchestratorAPI はオーケストレータAPIエラー
	ErrOrchestratorAPI = errors.New("orchestrator API error")
)

// バックエンド関連エラー
var (
	// ErrBackendCommunication はバックエンド通信エラー
	ErrBackendCommunication = errors.New("backend communication error")
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
)

// バリデーション関連エラー
var (
	// ErrInvalidIMSI は不正なIMSI形式エラー
	ErrInvalidIMSI = errors.New("invalid IMSI format")
	// ErrInvalidHex は不正な16進数文字列エラー
	ErrInvalidHex = errors.New("invalid hex string")
	// ErrInvalidState は不正な加入者状態エラー
	ErrInvalidState = errors.New("invalid subscriber state")
)
