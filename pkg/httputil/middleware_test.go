package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMiddlewareEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(TraceIDMiddleware(), RecoveryMiddleware(), LoggingMiddleware())
	engine.GET("/trace", func(c *gin.Context) {
		c.String(http.StatusOK, TraceID(c))
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return engine
}

func TestTraceIDMiddleware(t *testing.T) {
	engine := newMiddlewareEngine()

	t.Run("propagates header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/trace", nil)
		req.Header.Set(HeaderTraceID, "trace-123")
		engine.ServeHTTP(w, req)

		if w.Body.String() != "trace-123" {
			t.Errorf("trace id = %q, want trace-123", w.Body.String())
		}
		if got := w.Header().Get(HeaderTraceID); got != "trace-123" {
			t.Errorf("response header = %q, want trace-123", got)
		}
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trace", nil))

		if len(w.Body.String()) != 36 {
			t.Errorf("generated trace id = %q, want UUID", w.Body.String())
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	engine := newMiddlewareEngine()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var problem ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("invalid problem body: %v", err)
	}
	if problem.Status != http.StatusInternalServerError {
		t.Errorf("problem status = %d", problem.Status)
	}
}
