package httputil

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oyaguma3/lte-nms/pkg/logging"
)

// HeaderTraceID はトレースIDを伝搬するHTTPヘッダ名。
const HeaderTraceID = "X-Trace-ID"

// TraceIDKey はgin.ContextにトレースIDを格納するキー。
const TraceIDKey = "trace_id"

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。
// ヘッダがない場合はUUIDを生成し、レスポンスヘッダにも設定する。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(HeaderTraceID, traceID)
		c.Next()
	}
}

// TraceID はgin.ContextのトレースIDを返す。
func TraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

// LoggingMiddleware はリクエストログを出力する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Info("request completed",
			logging.WithTraceID(TraceID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			logging.WithSrcIP(c.ClientIP()),
			logging.WithHTTPStatus(c.Writer.Status()),
			logging.WithLatency(time.Since(start).Milliseconds()),
		)
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered",
					logging.FieldTraceID, TraceID(c),
					logging.FieldError, fmt.Sprint(r),
				)
				AbortWithError(c, InternalServerError("an unexpected error occurred"))
			}
		}()
		c.Next()
	}
}
