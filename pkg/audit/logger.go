// Package audit は加入者操作の監査ログ機能を提供する。
// 監査ログはアプリケーションログとは別のJSON Lines形式で出力する。
package audit

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/oyaguma3/lte-nms/pkg/logging"
)

// EventID は監査ログのイベントID。
const EventID = "AUDIT_LOG"

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	// OpCreate は作成操作
	OpCreate Operation = "create"
	// OpUpdate は更新操作
	OpUpdate Operation = "update"
	// OpDelete は削除操作
	OpDelete Operation = "delete"
	// OpImport はインポート操作
	OpImport Operation = "import"
	// OpExport はエクスポート操作
	OpExport Operation = "export"
)

// Actor は操作を行った主体を表す。
type Actor struct {
	User         string // 操作ユーザー
	Organization string // 所属組織（TUIでは空）
}

// Entry は監査ログエントリを表す。
type Entry struct {
	Time         string    `json:"time"`                    // RFC3339形式のタイムスタンプ
	Level        string    `json:"level"`                   // ログレベル（常に"INFO"）
	App          string    `json:"app"`                     // 出力元アプリケーション名
	EventID      string    `json:"event_id"`                // イベントID（常に"AUDIT_LOG"）
	Msg          string    `json:"msg"`                     // メッセージ
	Operation    Operation `json:"operation"`               // 操作種別
	NetworkID    string    `json:"network_id"`              // 対象ネットワーク
	SubscriberID string    `json:"subscriber_id,omitempty"` // 対象加入者ID（マスク済み）
	User         string    `json:"user"`                    // 操作ユーザー
	Organization string    `json:"organization,omitempty"`  // 所属組織
	Details      string    `json:"details,omitempty"`       // 追加詳細情報
}

// Logger は監査ログを出力する。
type Logger struct {
	writer io.Writer
	app    string
	masker *logging.Masker
	now    func() time.Time
	mu     sync.Mutex
}

// NewLogger は標準出力へ書き込むLoggerを生成する。
func NewLogger(app string, masker *logging.Masker) *Logger {
	return NewLoggerWithWriter(os.Stdout, app, masker)
}

// NewLoggerWithWriter は指定されたWriterを使用するLoggerを生成する。
// maskerがnilの場合はマスキングしない。
func NewLoggerWithWriter(writer io.Writer, app string, masker *logging.Masker) *Logger {
	return &Logger{
		writer: writer,
		app:    app,
		masker: masker,
		now:    time.Now,
	}
}

// Log は監査ログエントリを出力する。
func (l *Logger) Log(actor Actor, op Operation, networkID, subscriberID, msg, details string) {
	entry := Entry{
		Time:         l.now().UTC().Format(time.RFC3339),
		Level:        "INFO",
		App:          l.app,
		EventID:      EventID,
		Msg:          msg,
		Operation:    op,
		NetworkID:    networkID,
		SubscriberID: l.masker.IMSI(subscriberID),
		User:         actor.User,
		Organization: actor.Organization,
		Details:      details,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(append(data, '\n'))
}

// LogCreate は加入者作成のログを出力する。
func (l *Logger) LogCreate(actor Actor, networkID, subscriberID string) {
	l.Log(actor, OpCreate, networkID, subscriberID, "subscriber created", "")
}

// LogUpdate は加入者更新のログを出力する。
func (l *Logger) LogUpdate(actor Actor, networkID, subscriberID string) {
	l.Log(actor, OpUpdate, networkID, subscriberID, "subscriber updated", "")
}

// LogDelete は加入者削除のログを出力する。
func (l *Logger) LogDelete(actor Actor, networkID, subscriberID string) {
	l.Log(actor, OpDelete, networkID, subscriberID, "subscriber deleted", "")
}

// LogImport はCSVインポートのログを出力する。
// sourceはファイル名などの取り込み元。
func (l *Logger) LogImport(actor Actor, networkID, source string, succeeded, failed int) {
	details := "source=" + source +
		" succeeded=" + strconv.Itoa(succeeded) +
		" failed=" + strconv.Itoa(failed)
	l.Log(actor, OpImport, networkID, "", "subscribers imported", details)
}

// LogExport はCSVエクスポートのログを出力する。
func (l *Logger) LogExport(actor Actor, networkID, dest string, count int) {
	details := "dest=" + dest + " count=" + strconv.Itoa(count)
	l.Log(actor, OpExport, networkID, "", "subscribers exported", details)
}
