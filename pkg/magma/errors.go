package magma

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = fmt.Errorf("circuit breaker is open: %w", apperr.ErrBackendCommunication)

	// ErrInvalidResponse はオーケストレータからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from orchestrator")
)

// APIError はHTTP APIエラーを表す
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetails
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("orchestrator api error: %d %s - %s", e.StatusCode, e.Details.Title, e.Details.Detail)
	}
	return fmt.Sprintf("orchestrator api error: %d %s", e.StatusCode, e.Message)
}

// Unwrap はapperr.ErrOrchestratorAPIを返す。
func (e *APIError) Unwrap() error {
	return apperr.ErrOrchestratorAPI
}

// IsNotFound はリソース未登録エラーかどうかを判定する
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict はリソース重複エラーかどうかを判定する
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsBadRequest はリクエスト不正エラーかどうかを判定する
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is はapperr.ErrBackendCommunicationとの比較を許可する。
func (e *ConnectionError) Is(target error) bool {
	return target == apperr.ErrBackendCommunication
}

// classify はAPIErrorをアプリケーションのセンチネルエラーと結び付ける。
// notFoundは404応答時に付与するセンチネル（加入者またはネットワーク）。
func classify(apiErr *APIError, notFound error) error {
	switch {
	case apiErr.IsNotFound():
		if apiErr.Details != nil && apiErr.Details.Type == ProblemTypeNetworkNotFound {
			notFound = apperr.ErrNetworkNotFound
		}
		return fmt.Errorf("%w: %w", notFound, apiErr)
	case apiErr.IsConflict():
		return fmt.Errorf("%w: %w", apperr.ErrSubscriberExists, apiErr)
	case apiErr.IsBadRequest():
		return fmt.Errorf("%w: %w", apperr.ErrInvalidRequest, apiErr)
	case apiErr.IsServerError():
		return apperr.NewBackendError(CBName, apiErr.StatusCode, apiErr)
	default:
		return apiErr
	}
}
