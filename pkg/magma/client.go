package magma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/model"
)

// Options はクライアント生成時の設定
type Options struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
}

// Client はオーケストレータREST APIクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

var _ SubscriberAPI = (*Client)(nil)

// NewClient は新しいオーケストレータクライアントを生成する。
// Timeout/FailureThresholdが0以下の場合は既定値を使用する。
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	threshold := opts.FailureThreshold
	if threshold <= 0 {
		threshold = CBFailureThreshold
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader(HeaderAccept, ContentTypeJSON)

	cbSettings := gobreaker.Settings{
		Name:        CBName,
		MaxRequests: CBMaxRequests,
		Interval:    CBInterval,
		Timeout:     CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
					"from", from.String(),
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
	}
}

// isBreakerSuccess はCircuit Breakerの失敗判定を接続エラーに限定する。
// HTTPエラー応答は要求単位の結果であり、失敗として数えない。
func isBreakerSuccess(err error) bool {
	var connErr *ConnectionError
	return !errors.As(err, &connErr)
}

// CreateSubscriber は加入者を作成する。
// レスポンスボディにIDが含まれない場合は送信したIDを返す。
func (c *Client) CreateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) (string, error) {
	body, err := c.do(ctx, http.MethodPost, SubscribersPath(networkID), sub, apperr.ErrNetworkNotFound)
	if err != nil {
		return "", err
	}
	if id := parseCreatedID(body); id != "" {
		return id, nil
	}
	return sub.ID, nil
}

// UpdateSubscriber は既存の加入者を更新する。
func (c *Client) UpdateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error {
	_, err := c.do(ctx, http.MethodPut, SubscriberPath(networkID, sub.ID), sub, apperr.ErrSubscriberNotFound)
	return err
}

// GetSubscriber は加入者を取得する。
func (c *Client) GetSubscriber(ctx context.Context, networkID, subscriberID string) (*model.Subscriber, error) {
	body, err := c.do(ctx, http.MethodGet, SubscriberPath(networkID, subscriberID), nil, apperr.ErrSubscriberNotFound)
	if err != nil {
		return nil, err
	}
	var sub model.Subscriber
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &sub, nil
}

// ListSubscribers はネットワーク配下の加入者をID昇順で返す。
// オーケストレータはIDをキーとしたオブジェクトを返す。
func (c *Client) ListSubscribers(ctx context.Context, networkID string) ([]*model.Subscriber, error) {
	body, err := c.do(ctx, http.MethodGet, SubscribersPath(networkID), nil, apperr.ErrNetworkNotFound)
	if err != nil {
		return nil, err
	}
	var byID map[string]*model.Subscriber
	if err := json.Unmarshal(body, &byID); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}

	subs := make([]*model.Subscriber, 0, len(byID))
	for id, sub := range byID {
		if sub == nil {
			continue
		}
		if sub.ID == "" {
			sub.ID = id
		}
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs, nil
}

// DeleteSubscriber は加入者を削除する。
func (c *Client) DeleteSubscriber(ctx context.Context, networkID, subscriberID string) error {
	_, err := c.do(ctx, http.MethodDelete, SubscriberPath(networkID, subscriberID), nil, apperr.ErrSubscriberNotFound)
	return err
}

// ListNetworks はLTEネットワークID一覧を返す。
func (c *Client) ListNetworks(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, LTENetworksPath, nil, apperr.ErrNetworkNotFound)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	sort.Strings(ids)
	return ids, nil
}

// do はCircuit Breaker経由でリクエストを送信し、2xxのレスポンスボディを返す。
// notFoundは404応答時に付与するセンチネルエラー。
func (c *Client) do(ctx context.Context, method, path string, reqBody any, notFound error) ([]byte, error) {
	traceID := TraceIDFromContext(ctx)
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID)
		if reqBody != nil {
			req.SetHeader(HeaderContentType, ContentTypeJSON).SetBody(reqBody)
		}

		resp, err := req.Execute(method, c.baseURL+path)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// 5xx（501除く）はエラーログを出力する。CB失敗判定は接続エラーのみ
		if statusCode >= 500 && statusCode != http.StatusNotImplemented {
			apiErr := parseAPIError(statusCode, resp.Body())
			slog.Error("orchestrator api error",
				logging.FieldEventID, "ORCH_API_ERR",
				logging.FieldTraceID, traceID,
				logging.FieldError, apiErr.Error(),
				logging.FieldHTTPStatus, statusCode,
				logging.FieldLatencyMs, latencyMs,
			)
			return nil, apiErr
		}

		// 4xx, 501
		if statusCode < 200 || statusCode >= 300 {
			apiErr := parseAPIError(statusCode, resp.Body())
			slog.Debug("orchestrator api rejected request",
				logging.FieldEventID, "ORCH_API_REJECT",
				logging.FieldTraceID, traceID,
				logging.FieldHTTPStatus, statusCode,
				logging.FieldLatencyMs, latencyMs,
			)
			return apiErr, nil
		}

		slog.Debug("orchestrator api success",
			logging.FieldTraceID, traceID,
			"method", method,
			"path", path,
			logging.FieldLatencyMs, latencyMs,
		)
		return resp.Body(), nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, classify(apiErr, notFound)
		}
		return nil, err
	}

	if apiErr, ok := result.(*APIError); ok {
		return nil, classify(apiErr, notFound)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return body, nil
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
func parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}

// parseCreatedID は作成APIのレスポンスからIDを取り出す。
// JSON文字列とidフィールドを持つオブジェクトの両方を受け付ける。
func parseCreatedID(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(body, &id); err == nil {
		return id
	}
	var created createdResponse
	if err := json.Unmarshal(body, &created); err == nil {
		return created.ID
	}
	return ""
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext はコンテキストのTrace IDを返す。
// 未設定の場合は新しいUUIDを生成する。
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey{}).(string); ok && traceID != "" {
		return traceID
	}
	return uuid.New().String()
}
