package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID      = "trace_id"
	FieldEventID      = "event_id"
	FieldError        = "error"
	FieldSrcIP        = "src_ip"
	FieldLatencyMs    = "latency_ms"
	FieldHTTPStatus   = "http_status"
	FieldIMSI         = "imsi"
	FieldNetworkID    = "network_id"
	FieldOrganization = "organization"
	FieldRowCount     = "row_count"
	FieldFailedCount  = "failed_count"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithSrcIP はソースIPアドレスのslog.Attrを返す。
func WithSrcIP(ip string) slog.Attr {
	return slog.String(FieldSrcIP, ip)
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithNetworkID はネットワークIDのslog.Attrを返す。
func WithNetworkID(networkID string) slog.Attr {
	return slog.String(FieldNetworkID, networkID)
}

// WithOrganization は組織名のslog.Attrを返す。
func WithOrganization(org string) slog.Attr {
	return slog.String(FieldOrganization, org)
}

// Attr はマスキング済みIMSIのslog.Attrを返す。
func (m *Masker) Attr(imsi string) slog.Attr {
	return slog.String(FieldIMSI, m.IMSI(imsi))
}

// ImportAttrs はCSVインポートの集計ログに付与する属性を返す。
func ImportAttrs(traceID, networkID string, rows, failed int) []any {
	return []any{
		WithTraceID(traceID),
		WithNetworkID(networkID),
		slog.Int(FieldRowCount, rows),
		slog.Int(FieldFailedCount, failed),
	}
}
