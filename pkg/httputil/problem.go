// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"errors"
	"net/http"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
)

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
type ProblemDetail struct {
	Type   string `json:"type"`             // エラータイプのURI
	Title  string `json:"title"`            // エラータイトル
	Status int    `json:"status"`           // HTTPステータスコード
	Detail string `json:"detail,omitempty"` // 詳細説明
	// Instance は問題が発生したリクエストのパス
	Instance string `json:"instance,omitempty"`
	// TraceID はログと突き合わせるためのトレースID（拡張メンバー）
	TraceID string `json:"trace_id,omitempty"`
}

// NewProblemDetail は新しいProblemDetailを生成する。
func NewProblemDetail(status int, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// BadRequest は400 Bad Requestのエラーレスポンスを生成する。
func BadRequest(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadRequest, "Bad Request", detail)
}

// NotFound は404 Not Foundのエラーレスポンスを生成する。
func NotFound(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotFound, "Not Found", detail)
}

// InternalServerError は500 Internal Server Errorのエラーレスポンスを生成する。
func InternalServerError(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusInternalServerError, "Internal Server Error", detail)
}

// BadGateway は502 Bad Gatewayのエラーレスポンスを生成する。
func BadGateway(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadGateway, "Bad Gateway", detail)
}

// Forbidden は403 Forbiddenのエラーレスポンスを生成する。
func Forbidden(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusForbidden, "Forbidden", detail)
}

// Conflict は409 Conflictのエラーレスポンスを生成する。
func Conflict(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusConflict, "Conflict", detail)
}

// ServiceUnavailable は503 Service Unavailableのエラーレスポンスを生成する。
func ServiceUnavailable(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusServiceUnavailable, "Service Unavailable", detail)
}

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// FromError はアプリケーションエラーを対応するProblemDetailに変換する。
// 未知のエラーは詳細を隠して500とする。
func FromError(err error) *ProblemDetail {
	var (
		validationErr *apperr.ValidationError
		backendErr    *apperr.BackendError
	)
	switch {
	case errors.As(err, &validationErr):
		return BadRequest(validationErr.Error())
	case errors.Is(err, apperr.ErrInvalidRequest),
		errors.Is(err, apperr.ErrInvalidIMSI),
		errors.Is(err, apperr.ErrInvalidHex),
		errors.Is(err, apperr.ErrInvalidState):
		return BadRequest(err.Error())
	case errors.Is(err, apperr.ErrNetworkForbidden):
		return Forbidden("network is not available to this organization")
	case errors.Is(err, apperr.ErrSubscriberNotFound):
		return NotFound("subscriber not found")
	case errors.Is(err, apperr.ErrNetworkNotFound):
		return NotFound("network not found")
	case errors.Is(err, apperr.ErrOrganizationNotFound):
		return NotFound("organization not found")
	case errors.Is(err, apperr.ErrSubscriberExists):
		return Conflict("subscriber already exists")
	case errors.Is(err, apperr.ErrNetworkExists):
		return Conflict("network already exists")
	case errors.As(err, &backendErr),
		errors.Is(err, apperr.ErrBackendCommunication),
		errors.Is(err, apperr.ErrOrchestratorAPI):
		return BadGateway("orchestrator request failed")
	case errors.Is(err, apperr.ErrValkeyConnection):
		return ServiceUnavailable("database connection error")
	default:
		return InternalServerError("an unexpected error occurred")
	}
}
