package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, ContentType) {
		t.Errorf("Content-Type = %q, want %q", ct, ContentType)
	}
	var p ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	return p
}

func TestWriteError_FillsRequestFields(t *testing.T) {
	router := gin.New()
	router.Use(TraceIDMiddleware())
	router.GET("/nms/api/networks/:id/subscribers", func(c *gin.Context) {
		WriteError(c, Conflict("subscriber already exists"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nms/api/networks/net1/subscribers", nil)
	req.Header.Set(HeaderTraceID, "trace-abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	p := decodeProblem(t, w)
	if p.Instance != "/nms/api/networks/net1/subscribers" {
		t.Errorf("Instance = %q", p.Instance)
	}
	if p.TraceID != "trace-abc" {
		t.Errorf("TraceID = %q, want trace-abc", p.TraceID)
	}
	if p.Detail != "subscriber already exists" {
		t.Errorf("Detail = %q", p.Detail)
	}
}

func TestWriteError_KeepsExplicitFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	problem := BadRequest("bad")
	problem.Instance = "/custom"
	WriteError(c, problem)

	p := decodeProblem(t, w)
	if p.Instance != "/custom" {
		t.Errorf("Instance = %q, want /custom", p.Instance)
	}
	if p.TraceID != "" {
		t.Errorf("TraceID = %q, want empty without middleware", p.TraceID)
	}
	// 元のProblemDetailは変更しない
	if problem.TraceID != "" || problem.Instance != "/custom" {
		t.Errorf("problem mutated: %+v", problem)
	}
}

func TestAbortWithError_InMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-NMS-Organization") == "" {
			AbortWithError(c, Forbidden("unknown organization"))
			return
		}
		c.Next()
	})

	var reached bool
	router.GET("/networks", func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, []string{"net1"})
	})

	t.Run("aborted", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/networks", nil))

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
		if reached {
			t.Error("handler should not run after abort")
		}
		if p := decodeProblem(t, w); p.Title != "Forbidden" || p.Instance != "/networks" {
			t.Errorf("problem = %+v", p)
		}
	})

	t.Run("passes through", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/networks", nil)
		req.Header.Set("X-NMS-Organization", "acme")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK || !reached {
			t.Errorf("status = %d, reached = %v", w.Code, reached)
		}
	})
}
